// Command lwdissect dissects a single LoRaWAN PHY PDU from the command
// line and prints its parse tree. Argument parsing, byte-sequence
// normalization and rendering all live here; package lorawan stays
// free of any I/O or presentation concerns.
package main

import (
	"flag"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	lorawan "github.com/brocaar/lwdissect"
)

func main() {
	var (
		phyPDU    = flag.String("phy", "", "PHY PDU, hex or base64 (required)")
		appKeyHex = flag.String("appkey", "", "AppKey, 16 hex bytes")
		nwkSKey   = flag.String("nwkskey", "", "NwkSKey, 16 hex bytes")
		appSKey   = flag.String("appskey", "", "AppSKey, 16 hex bytes")
		version   = flag.String("version", "1.0", "MACVersion: 1.0, 1.0.3 or 1.1")
		region    = flag.String("region", "EU868", "Region for CFList numbering: EU868, AS923 or US920")
		upperFCnt = flag.Uint("upper-fcnt", 0, "caller-tracked upper 16 bits of FCnt")
		parseOnly = flag.Bool("parse-only", false, "dissect without rendering the tree (diagnostics still print)")
		verbose   = flag.Bool("v", false, "log diagnostics to stderr after dissection")
	)
	flag.Parse()

	logger := log.New()
	if !*verbose {
		logger.SetOutput(os.Stderr)
		logger.SetLevel(log.WarnLevel)
	}

	if *phyPDU == "" {
		fmt.Fprintln(os.Stderr, "lwdissect: -phy is required")
		flag.Usage()
		os.Exit(2)
	}

	raw, err := normalizePHYPayload(*phyPDU)
	if err != nil {
		logger.WithError(err).Fatal("lwdissect: could not normalize -phy")
	}

	opts := lorawan.Options{
		Version:   parseVersion(*version, logger),
		Region:    parseRegion(*region, logger),
		UpperFCnt: uint16(*upperFCnt),
		ParseOnly: *parseOnly,
	}
	if *appKeyHex != "" {
		opts.AppKey = parseKey(*appKeyHex, "appkey", logger)
	}
	if *nwkSKey != "" {
		opts.NwkSKey = parseKey(*nwkSKey, "nwkskey", logger)
	}
	if *appSKey != "" {
		opts.AppSKey = parseKey(*appSKey, "appskey", logger)
	}

	tree, err := lorawan.Dissect(raw, opts)
	if err != nil {
		logger.WithError(err).Fatal("lwdissect: dissect failed")
	}
	if *verbose {
		for _, d := range tree.Diagnostics {
			logger.Info(d.String())
		}
	}

	if opts.ParseOnly {
		for _, d := range tree.Diagnostics {
			fmt.Println(d)
		}
		return
	}
	fmt.Print(render(tree))
}

func parseKey(hexKey, flagName string, logger *log.Logger) *lorawan.AES128Key {
	var k lorawan.AES128Key
	if err := k.UnmarshalText([]byte(hexKey)); err != nil {
		logger.WithError(err).Fatalf("lwdissect: -%s must be 16 hex bytes", flagName)
	}
	return &k
}

func parseVersion(s string, logger *log.Logger) lorawan.MACVersion {
	switch s {
	case "1.0":
		return lorawan.MACVersion10
	case "1.0.3":
		return lorawan.MACVersion103
	case "1.1":
		return lorawan.MACVersion11
	default:
		logger.Warnf("lwdissect: unknown -version %q, defaulting to 1.0", s)
		return lorawan.MACVersion10
	}
}

func parseRegion(s string, logger *log.Logger) lorawan.Region {
	switch s {
	case "EU868":
		return lorawan.RegionEU868
	case "AS923":
		return lorawan.RegionAS923
	case "US920":
		return lorawan.RegionUS920
	default:
		logger.Warnf("lwdissect: unknown -region %q, defaulting to EU868", s)
		return lorawan.RegionEU868
	}
}
