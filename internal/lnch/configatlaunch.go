//    TopicaGoServer
//    Copyright: E Gunderson 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//

package lnch

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"text/template"

	"github.com/e-gun/TopicaGoServer/internal/mm"
	"github.com/e-gun/TopicaGoServer/internal/str"
	"github.com/e-gun/TopicaGoServer/internal/vv"
)

var (
	Config *str.CurrentConfiguration
	Msg    = mm.NewMessageMaker()
)

// LookForConfigFile - test to see if we can find a config file; if not build one with the default values and save it
func LookForConfigFile() {
	_, a := os.Stat(vv.CONFIGBASIC)

	var b error
	var c error

	h, e := os.UserHomeDir()
	if e != nil {
		// how likely is this...?
		b = errors.New("cannot find UserHomeDir")
		c = errors.New("cannot find UserHomeDir")
	} else {
		_, b = os.Stat(fmt.Sprintf(vv.CONFIGALTAPTH, h) + vv.CONFIGBASIC)
		_, c = os.Stat(fmt.Sprintf(vv.CONFIGALTAPTH, h) + vv.CONFIGPROLIX)
	}

	notfound := (a != nil) && (b != nil) && (c != nil)

	if notfound {
		WriteDefaultConfig(h)
	}
}

// WriteDefaultConfig - save a CONFIGPROLIX with default values so the next launch finds one
func WriteDefaultConfig(h string) {
	const (
		MSG1  = "wrote default configuration file "
		FAIL1 = "WriteDefaultConfig() could not write "
	)

	cfg := BuildDefaultConfig()
	content, err := json.MarshalIndent(cfg, vv.JSONINDENT, vv.JSONINDENT)
	Msg.EC(err)

	pd := fmt.Sprintf(vv.CONFIGALTAPTH, h)

	// a fresh install might not have a "~/.config/" yet
	if err = os.MkdirAll(pd, os.FileMode(0700)); err != nil {
		Msg.CRIT(FAIL1 + pd)
		return
	}

	if err = os.WriteFile(pd+vv.CONFIGPROLIX, content, vv.WRITEPERMS); err != nil {
		Msg.CRIT(FAIL1 + vv.CONFIGPROLIX)
		return
	}

	Msg.PEEK(MSG1 + vv.CONFIGPROLIX)
}

// ConfigAtLaunch - read the configuration values from JSON and/or command line
func ConfigAtLaunch() {
	const (
		FAIL1 = "Could not parse your information as a valid collection of credentials. Use the following template:"
		FAIL2 = `"{\"Pass\": \"YOURPASSWORDHERE\" ,\"Host\": \"127.0.0.1\", \"Port\": 5432, \"DBName\": \"topicaDB\" ,\"User\": \"topica_wr\"}"`
		FAIL3 = `Could not parse the information in '%s'. Skipping and attempting to use built-in defaults instead.`
		FAIL4 = "unknown cache backend '%s'; using '%s' instead"
		FAIL5 = "Refusing to set a workercount greater than NumCPU: %d > %d ---> setting workercount value to NumCPU: %d"
		FAIL6 = "Could not open '%s'"
		FAIL7 = "ConfigAtLaunch() failed to execute help text template"
	)

	Config = BuildDefaultConfig()

	uh, _ := os.UserHomeDir()
	h := fmt.Sprintf(vv.CONFIGALTAPTH, uh)
	prolixcfg := fmt.Sprintf("%s/%s", h, vv.CONFIGPROLIX)

	loadedcfg, e := os.Open(prolixcfg)
	if e != nil {
		Msg.CRIT(fmt.Sprintf(FAIL6, prolixcfg))
	}

	decoderc := json.NewDecoder(loadedcfg)
	confc := str.CurrentConfiguration{}
	errc := decoderc.Decode(&confc)
	_ = loadedcfg.Close()

	if errc == nil {
		Config = &confc
	} else {
		Msg.CRIT(fmt.Sprintf(FAIL3, prolixcfg))
	}

	// an old CONFIGPROLIX might mean some of the following were zeroed; that is very bad...
	if Config.TopicCount == 0 {
		Config.TopicCount = vv.DEFAULTTOPICCOUNT
	}

	if Config.CacheBackend == "" {
		Config.CacheBackend = vv.CACHEPROVIDERDFLT
	}

	if Config.BadChars == "" {
		Config.BadChars = vv.UNACCEPTABLEINPUT
	}

	var cf string

	args := os.Args[1:len(os.Args)]

	help := func() {
		PrintVersion(*Config)
		PrintBuildInfo(*Config)

		m := map[string]interface{}{
			"cache":    Config.CacheBackend,
			"conffile": vv.CONFIGPROLIX,
			"cpus":     runtime.NumCPU(),
			"echoll":   Config.EchoLog,
			"tgsll":    Config.LogLevel,
			"home":     h,
			"host":     Config.HostIP,
			"port":     Config.HostPort,
			"projurl":  vv.PROJURL,
			"topics":   Config.TopicCount,
			"workers":  Config.WorkerCount}

		t := template.Must(template.New("").Parse(vv.HELPTEXTTEMPLATE))

		var b bytes.Buffer
		if ee := t.Execute(&b, m); ee != nil {
			Msg.CRIT(FAIL7)
		}
		fmt.Println(Msg.Styled(Msg.Color(b.String())))

		os.Exit(0)
	}

	for i, a := range args {
		switch a {
		case "-vv":
			PrintVersion(*Config)
			PrintBuildInfo(*Config)
			os.Exit(1)
		case "-v":
			fmt.Println(vv.VERSION + VersSuppl)
			os.Exit(1)
		case "-au":
			Config.Authenticate = true
		case "-bw":
			Config.BlackAndWhite = true
		case "-cb":
			cb := args[i+1]
			switch cb {
			case "sqlite", "pgsql", vv.CACHEDISABLED:
				Config.CacheBackend = cb
			default:
				Msg.CRIT(fmt.Sprintf(FAIL4, cb, vv.CACHEPROVIDERDFLT))
				Config.CacheBackend = vv.CACHEPROVIDERDFLT
			}
		case "-dg":
			Config.GraphDisabled = true
		case "-el":
			ll, err := strconv.Atoi(args[i+1])
			Msg.EC(err)
			Config.EchoLog = ll
		case "-gl":
			ll, err := strconv.Atoi(args[i+1])
			Msg.EC(err)
			Config.LogLevel = ll
		case "-gz":
			Config.Gzip = true
		case "-h":
			help()
		case "-pc":
			Config.ProfileCPU = true
		case "-pg":
			js := args[i+1]
			var pl str.PostgresLogin
			err := json.Unmarshal([]byte(js), &pl)
			if err != nil {
				Msg.MAND(FAIL1)
				Msg.CRIT(FAIL2)
			}
			Config.PGLogin = pl
		case "-pm":
			Config.ProfileMEM = true
		case "-q":
			Config.QuietStart = true
		case "-sa":
			Config.HostIP = args[i+1]
		case "-sp":
			p, err := strconv.Atoi(args[i+1])
			Msg.EC(err)
			Config.HostPort = p
		case "-st":
			Config.SelfTest += 1
		case "-tk":
			Config.TickerActive = true
		case "-tt":
			tt, err := strconv.Atoi(args[i+1])
			Msg.EC(err)
			Config.TopicCount = tt
		case "-wc":
			wc, err := strconv.Atoi(args[i+1])
			Msg.EC(err)
			Config.WorkerCount = wc
		case "-00":
			Config.WipeCache = true
		default:
			// do nothing
		}
	}

	y := ""
	if errc != nil {
		y = " *not*"
	}
	Msg.TMI(fmt.Sprintf("'%s%s'%s loaded", h, vv.CONFIGPROLIX, y))

	SetConfigPass(&confc, cf)

	if Config.WorkerCount > runtime.NumCPU() {
		Msg.CRIT(fmt.Sprintf(FAIL5, Config.WorkerCount, runtime.NumCPU(), runtime.NumCPU()))
		Config.WorkerCount = runtime.NumCPU()
	}
}

// BuildDefaultConfig - return a CurrentConfiguration filled out with various default values
func BuildDefaultConfig() *str.CurrentConfiguration {
	var c str.CurrentConfiguration
	c.Authenticate = false
	c.BadChars = vv.UNACCEPTABLEINPUT
	c.BlackAndWhite = vv.BLACKANDWHITE
	c.CacheBackend = vv.CACHEPROVIDERDFLT
	c.EchoLog = vv.DEFAULTECHOLOGLEVEL
	c.GraphDisabled = false
	c.Gzip = vv.USEGZIP
	c.HostIP = vv.SERVEDFROMHOST
	c.HostPort = vv.SERVEDFROMPORT
	c.LogLevel = vv.DEFAULTGOLOGLEVEL
	c.ManualGC = false
	c.ProfileCPU = false
	c.ProfileMEM = false
	c.QuietStart = false
	c.SelfTest = 0
	c.TickerActive = vv.TICKERISACTIVE
	c.TopicCount = vv.DEFAULTTOPICCOUNT
	c.WipeCache = false
	c.WorkerCount = runtime.NumCPU()

	pl := str.PostgresLogin{
		Host:   vv.DEFAULTPSQLHOST,
		Port:   vv.DEFAULTPSQLPORT,
		User:   vv.DEFAULTPSQLUSER,
		Pass:   "",
		DBName: vv.DEFAULTPSQLDB,
	}

	c.PGLogin = pl

	return &c
}

// SetConfigPass - make sure that Config.PGLogin.Pass != "" if the pgsql cache backend is going to be used
func SetConfigPass(cfg *str.CurrentConfiguration, cf string) {
	const (
		FAIL3     = "FAILED to load database credentials from any of '%s', '%s' or '%s'"
		FAIL4     = "At a minimum be sure that a 'tgs-conf.json' file exists and that it has the following format:"
		FAIL6     = "Could not open '%s'"
		BLANKPASS = "PostgreSQLPassword is blank. Check your 'tgs-conf.json' file. NB: 'PostgreSQLPassword ≠ 'PosgreSQLPassword'.\n"
	)
	type ConfigFile struct {
		PostgreSQLPassword string
	}

	if Config.CacheBackend != "pgsql" {
		// sqlite needs no credentials; neither does "none"
		return
	}

	uh, _ := os.UserHomeDir()
	h := fmt.Sprintf(vv.CONFIGALTAPTH, uh)

	if cf == "" {
		cf = fmt.Sprintf("%s/%s", vv.CONFIGLOCATION, vv.CONFIGBASIC)
	}

	acf := fmt.Sprintf("%s/%s", h, vv.CONFIGBASIC)

	if Config.PGLogin.Pass == "" {
		Config.PGLogin = str.PostgresLogin{}
		cfa, ee := os.Open(cf)
		if ee != nil {
			Msg.TMI(fmt.Sprintf(FAIL6, cf))
		}
		cfb, ee := os.Open(acf)
		if ee != nil {
			Msg.TMI(fmt.Sprintf(FAIL6, acf))
		}

		defer func(cfa *os.File) {
			err := cfa.Close()
			if err != nil {
			} // the file was almost certainly not found in the first place...
		}(cfa)
		defer func(cfb *os.File) {
			err := cfb.Close()
			if err != nil {
			} // the file was almost certainly not found in the first place...
		}(cfb)

		decodera := json.NewDecoder(cfa)
		confa := ConfigFile{}
		erra := decodera.Decode(&confa)

		decoderb := json.NewDecoder(cfb)
		confb := ConfigFile{}
		errb := decoderb.Decode(&confb)
		if erra != nil && errb != nil && cfg.PGLogin.DBName == "" {
			Msg.CRIT(fmt.Sprintf(FAIL3, cf, acf, fmt.Sprintf("%s/%s", h, vv.CONFIGPROLIX)))
			Msg.CRIT(fmt.Sprintf(FAIL4))
			fmt.Printf(vv.MINCONFIG)
			Msg.ExitOrHang(0)
		}

		thecfg := ConfigFile{}
		if erra == nil {
			thecfg = confa
		} else {
			thecfg = confb
		}

		if thecfg.PostgreSQLPassword == "" {
			Msg.MAND(BLANKPASS)
		}

		Config.PGLogin = str.PostgresLogin{
			Host:   vv.DEFAULTPSQLHOST,
			Port:   vv.DEFAULTPSQLPORT,
			User:   vv.DEFAULTPSQLUSER,
			DBName: vv.DEFAULTPSQLDB,
			Pass:   thecfg.PostgreSQLPassword,
		}
	}
}
