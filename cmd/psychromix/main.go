// psychromix reads a list of air flows from a CSV file, mixes them and
// prints the combined flow. Site conditions come from an INI file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"

	"github.com/chortbauer/psychroflow"
)

// FlowRecord is one row of the input CSV.
type FlowRecord struct {
	// volume flow, m3/h
	VolumeFlow float64 `csv:"volume_flow_m3h"`
	// dry bulb temperature, degree C
	TDryBulb float64 `csv:"t_dry_bulb_c"`
	// relative humidity, percent
	RelHum float64 `csv:"rel_hum_percent"`
}

// sitePressure reads the site pressure from the config file. An explicit
// pressure wins over a height above sea level; with neither the standard
// pressure is used.
func sitePressure(config_path string) float64 {
	file, err := ini.Load(config_path)
	if err != nil {
		log.WithError(err).Warn("config not readable, using standard pressure")
		return psychroflow.StandardPressure
	}

	site := file.Section("site")
	if site.HasKey("pressure_pa") {
		return site.Key("pressure_pa").MustFloat64(psychroflow.StandardPressure)
	}
	height := site.Key("height_above_sea_level_m").MustFloat64(0)
	return psychroflow.GetPressureFromHeight(height)
}

func run(csv_path, config_path string, dry_only bool) error {
	pressure := sitePressure(config_path)
	log.WithField("pressure_pa", fmt.Sprintf("%.0f", pressure)).Info("site pressure")

	f, err := os.Open(csv_path)
	if err != nil {
		return err
	}
	defer f.Close()

	var records []FlowRecord
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return err
	}
	if len(records) == 0 {
		return errors.New("no flows in input file")
	}

	hafs := make([]psychroflow.HumidAirFlow, 0, len(records))
	for i, rec := range records {
		has, err := psychroflow.NewHumidAirStateFromTDryBulbRelHum(
			rec.TDryBulb, rec.RelHum/100, pressure)
		if err != nil {
			return fmt.Errorf("flow %d: %w", i+1, err)
		}
		haf := psychroflow.NewHumidAirFlow(rec.VolumeFlow/3600, has)
		hafs = append(hafs, haf)
		fmt.Printf("flow %d: %s\n", i+1, haf.StrShort())
	}

	if dry_only {
		haf, err := psychroflow.MixHumidAirFlowsDry(hafs)
		if err != nil {
			var cond *psychroflow.CondensationError
			if errors.As(err, &cond) {
				log.WithField("excess_kg_per_s", cond.ExcessWaterMassFlow).
					Error("mix would condense")
			}
			return err
		}
		fmt.Printf("mixed:  %s\n", haf.StrShort())
		return nil
	}

	awf, err := psychroflow.MixHumidAirFlows(hafs)
	if err != nil {
		return err
	}

	fmt.Printf("mixed:  %s\n", awf.HumidAirFlow.StrShort())
	if awf.Regime != psychroflow.PhaseRegimeUnsaturated {
		fmt.Printf("condensate (%s): %.4g kg/s\n", awf.Regime, awf.CondensateMassFlow())
	}
	return nil
}

func main() {
	config_path := flag.String("config", "psychromix.ini", "site config file")
	dry_only := flag.Bool("dry", false, "fail when the mix would condense")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [-config file] [-dry] flows.csv\n", os.Args[0])
		os.Exit(2)
	}

	if err := run(flag.Arg(0), *config_path, *dry_only); err != nil {
		log.Fatal(err)
	}
}
