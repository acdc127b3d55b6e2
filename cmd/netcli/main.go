package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charlesren/netcli/connection"
	"github.com/charlesren/netcli/driver"
	"github.com/charlesren/netcli/internal/config"
	"github.com/charlesren/netcli/session"
	"github.com/charlesren/ylog"
)

var (
	Cfg      *config.Config
	ConfPath string

	deviceName  string
	inventory   string
	pingTarget  string
	traceTarget string
	showLog     bool
	rawCommand  string
)

func init() {
	confPath := flag.String("c", "../conf/netcli.yml", "ConfigPath")
	flag.StringVar(&deviceName, "device", "", "device name from config")
	flag.StringVar(&inventory, "inventory", "", "optional xlsx inventory to merge")
	flag.StringVar(&pingTarget, "ping", "", "ping target IP")
	flag.StringVar(&traceTarget, "traceroute", "", "traceroute target IP")
	flag.BoolVar(&showLog, "logbuffer", false, "dump the device log buffer")
	flag.StringVar(&rawCommand, "exec", "", "raw command to execute")
	flag.Parse()
	ConfPath = *confPath

	initConfig()
}

func initConfig() {
	var err error
	if Cfg, err = config.Load(ConfPath); err != nil {
		fmt.Printf("####LOAD_CONFIG_ERROR: %v", err)
		os.Exit(-1)
	}
	initLog()
}

func initLog() {
	logger := ylog.NewYLog(
		ylog.WithLogFile(Cfg.LogPath),
		ylog.WithMaxAge(3),
		ylog.WithMaxSize(100),
		ylog.WithMaxBackups(3),
		ylog.WithLevel(Cfg.LogLevel),
	)
	ylog.InitLogger(logger)
}

func main() {
	if inventory != "" {
		devices, err := config.LoadInventoryXLSX(inventory, "Sheet1")
		if err != nil {
			fatalf("inventory: %v", err)
		}
		Cfg.Devices = append(Cfg.Devices, devices...)
	}

	dev, err := Cfg.Device(deviceName)
	if err != nil {
		fatalf("%v", err)
	}
	profile, ok := driver.Default().Lookup(dev.Platform)
	if !ok {
		fatalf("unknown platform %q", dev.Platform)
	}

	transport, err := connection.DialSSH(connection.SSHConfig{
		Host:     dev.Host,
		Port:     dev.Port,
		Username: dev.Username,
		Password: dev.Password,
		Timeout:  Cfg.ConnectTimeout,
	})
	if err != nil {
		if strings.Contains(err.Error(), "unable to authenticate") {
			fatalf("%v", session.NewSessionErrorWithCause(session.ErrCodeAuthFailed,
				fmt.Sprintf("authentication failed for %s@%s", dev.Username, dev.Host), err))
		}
		fatalf("connect %s: %v", dev.Host, err)
	}

	sess, err := session.Connect(transport, profile)
	if err != nil {
		transport.Close()
		fatalf("session: %v", err)
	}
	defer sess.Close()

	if sess.Mode().Kind != driver.ModePrivileged {
		if err := sess.Enable(dev.EnablePassword); err != nil {
			fatalf("enable: %v", err)
		}
	}

	v, err := sess.Version()
	if err != nil {
		fatalf("version: %v", err)
	}
	fmt.Printf("%s  model=%s  os=%s\n", dev.Name, v.Model, v.OSVersion)
	if v.Uptime != "" {
		fmt.Printf("uptime: %s\n", v.Uptime)
	}

	if pingTarget != "" {
		p, err := sess.Ping(pingTarget)
		if err != nil {
			fatalf("ping %s: %v", pingTarget, err)
		}
		fmt.Printf("ping %s: %d/%d, loss %.2f%%, rtt min/avg/max %v/%v/%v\n",
			p.Target, p.Received, p.Sent, p.LossPct, p.RTTMin, p.RTTAvg, p.RTTMax)
	}

	if traceTarget != "" {
		hops, err := sess.Traceroute(traceTarget)
		if err != nil {
			fatalf("traceroute %s: %v", traceTarget, err)
		}
		for _, h := range hops {
			if h.Lost {
				fmt.Printf("%3d  *\n", h.TTL)
				continue
			}
			fmt.Printf("%3d  %-16s %v\n", h.TTL, h.Address, h.RTTs)
		}
	}

	if showLog {
		entries, err := sess.LogBuffer()
		if err != nil {
			fatalf("logbuffer: %v", err)
		}
		for _, e := range entries {
			fmt.Println(e.Raw)
		}
	}

	if rawCommand != "" {
		res, err := sess.Execute(rawCommand)
		if err != nil {
			fatalf("exec: %v", err)
		}
		if res.Err != nil {
			fatalf("exec: %v", res.Err)
		}
		fmt.Println(res.Output)
	}
}

func fatalf(format string, args ...interface{}) {
	ylog.Errorf("Main", format, args...)
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
