package main

/*------------------------------------------------------------------
 *
 * Purpose:	Command-line front end for the am433 decoder.
 *
 * Description:	Ported from original_source/am433/capture.c's main/
 *		usage, with the option letters kept unchanged (-f, -d,
 *		-l, -m, -s, -t, -v) and flag parsing switched to
 *		pflag, matching the teacher's kissutil/appserver
 *		command-line style.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/avian2/am433/src"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		file       = pflag.StringP("file", "f", "", "read baseband data from FILE")
		device     = pflag.StringP("device", "d", "", "read baseband data from ALSA/portaudio DEVICE")
		logFile    = pflag.StringP("log", "l", "", "log input baseband data from DEVICE into FILE (raw mono unsigned 8 bit)")
		binaryMode = pflag.BoolP("binary", "m", false, "use binary format for packet data on stdout")
		statsFlag  = pflag.StringP("stats", "s", "", "write aggregate channel statistics instead of packet data, updating every SECONDS (default 60 if given with no value)")
		statsSet   = false
		seconds    = pflag.IntP("time", "t", 0, "exit after SECONDS elapsed")
		verbose    = pflag.BoolP("verbose", "v", false, "enable verbose decoder debug output on stderr")
		config     = pflag.StringP("config", "c", "", "load tunable constants from YAML FILE")
		allMods    = pflag.Bool("all-decoders", false, "try every modulation decoder instead of just binary")
	)
	pflag.Lookup("stats").NoOptDefVal = "60"

	pflag.Usage = func() {
		fmt.Fprint(os.Stderr, "Usage: am433 [OPTION]... [-f FILE|-d DEVICE]\n"+
			"Read baseband data from FILE or DEVICE and write decoded packets to stdout.\n\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	statsSet = pflag.Lookup("stats").Changed

	cfg := am433.DefaultConfig()
	if *config != "" {
		c, err := am433.LoadConfig(*config)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		cfg = c
	}

	if *file == "" && *device == "" {
		pflag.Usage()
		return 0
	}

	var tracer am433.Tracer = am433.NoTracer
	if *verbose {
		logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
		logger.SetLevel(log.DebugLevel)
		tracer = am433.NewCharmTracer(logger)
	}

	var captureStart time.Time
	var source interface {
		Read(p []byte) (int, error)
	}

	if *file != "" {
		f, err := os.Open(*file)
		if err != nil {
			fmt.Fprintln(os.Stderr, "am433:", err)
			return 1
		}
		defer f.Close()
		source = f
		captureStart = time.Unix(0, 0)
	} else {
		src, err := am433.OpenAudioSource(*device, cfg.FS)
		if err != nil {
			fmt.Fprintln(os.Stderr, "am433:", err)
			return 1
		}
		defer src.Close()
		captureStart = src.TriggerTime()

		if *logFile != "" {
			lf, err := os.Create(*logFile)
			if err != nil {
				fmt.Fprintln(os.Stderr, "am433:", err)
				return 1
			}
			defer lf.Close()
			source = io.TeeReader(src, lf)
		} else {
			source = src
		}
	}

	capt := am433.NewCapture(cfg, captureStart)
	capt.Tracer = tracer
	if *allMods {
		capt.Dispatch = am433.AllDecoders
	}
	if *seconds > 0 {
		capt.SampleLimit = *seconds * cfg.FS
	}

	if statsSet {
		if n, err := parseIntDefault(*statsFlag, 60); err == nil {
			cfg.StatsIntervalS = n
		}
		capt.Stats = am433.NewStatsAggregator(cfg, captureStart)
		fmt.Println("#time\t\tutil\tacts\talls")
	} else if *binaryMode {
		capt.Emitter = &am433.BinaryEmitter{W: os.Stdout, FS: cfg.FS}
	} else {
		capt.Emitter = &am433.ASCIIEmitter{W: os.Stdout, FS: cfg.FS}
	}

	if err := capt.Run(source); err != nil {
		fmt.Fprintln(os.Stderr, "am433:", err)
		return 1
	}

	return 0
}

func parseIntDefault(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	var n int
	_, err := fmt.Sscanf(s, "%d", &n)
	if err != nil {
		return def, err
	}
	return n, nil
}
