package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/alecthomas/kong"
	kongdotenv "github.com/titusjaka/kong-dotenv-go"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/lox/koppen/internal/api"
	"github.com/lox/koppen/internal/hythergraph"
	"github.com/lox/koppen/internal/koppen"
	"github.com/lox/koppen/internal/models"
	"github.com/lox/koppen/internal/store"
)

type CLI struct {
	Debug bool `help:"Enable debug logging." env:"KOPPEN_DEBUG"`

	Classify    ClassifyCmd    `cmd:"" help:"Classify a location from twelve months of observations."`
	Hythergraph HythergraphCmd `cmd:"" help:"Render a hythergraph PNG from twelve months of observations."`
	Serve       ServeCmd       `cmd:"" help:"Run the classification HTTP API."`
	Locations   LocationsCmd   `cmd:"" help:"Inspect saved locations."`
}

type runCtx struct {
	log *zap.SugaredLogger
}

func main() {
	var cli CLI
	k := kong.Parse(&cli,
		kong.Name("koppen"),
		kong.Description("Köppen–Geiger climate classification from monthly precipitation and temperature."),
		kong.UsageOnError(),
		kong.Configuration(kongdotenv.ENVFileReader, ".env"),
	)

	var logger *zap.Logger
	var err error
	if cli.Debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	k.FatalIfErrorf(k.Run(&runCtx{log: logger.Sugar()}))
}

// recordInput is the JSON file format accepted by --file: one location's
// name, hemisphere, and monthly series.
type recordInput struct {
	Name     string    `json:"name"`
	Southern bool      `json:"southern"`
	Precip   []float64 `json:"precip"`
	Temp     []float64 `json:"temp"`
}

// monthlyInput holds the input flags shared by classify and hythergraph.
type monthlyInput struct {
	Precip string `help:"Comma-separated monthly precipitation in mm, January first." placeholder:"MM,..."`
	Temp   string `help:"Comma-separated monthly temperature in °C, January first." placeholder:"C,..."`
	South  bool   `help:"Location is in the southern hemisphere."`
	File   string `help:"Read a JSON record {name, southern, precip, temp} instead of flags." type:"existingfile"`
}

func (in monthlyInput) record() (recordInput, error) {
	if in.File != "" {
		data, err := os.ReadFile(in.File)
		if err != nil {
			return recordInput{}, err
		}
		var rec recordInput
		if err := json.Unmarshal(data, &rec); err != nil {
			return recordInput{}, fmt.Errorf("parse %s: %w", in.File, err)
		}
		return rec, nil
	}

	if in.Precip == "" || in.Temp == "" {
		return recordInput{}, errors.New("either --file or both --precip and --temp are required")
	}
	precip, err := parseSeries(in.Precip)
	if err != nil {
		return recordInput{}, fmt.Errorf("parse --precip: %w", err)
	}
	temp, err := parseSeries(in.Temp)
	if err != nil {
		return recordInput{}, fmt.Errorf("parse --temp: %w", err)
	}
	return recordInput{Southern: in.South, Precip: precip, Temp: temp}, nil
}

func parseSeries(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

type ClassifyCmd struct {
	monthlyInput
	Stats bool   `help:"Print the derived statistics alongside the code."`
	Save  bool   `help:"Persist the classified location (requires a name)."`
	Name  string `help:"Location name, overrides the record file's name."`
	DB    string `help:"Path to the SQLite database." default:"data/koppen.db" env:"KOPPEN_DB"`
}

func (c *ClassifyCmd) Run(rc *runCtx) error {
	rec, err := c.record()
	if err != nil {
		return err
	}
	if c.Name != "" {
		rec.Name = c.Name
	}

	res, err := koppen.Classify(rec.Precip, rec.Temp, rec.Southern)
	if err != nil {
		return err
	}
	warnIfUnknown(rc.log, rec.Name, res)

	fmt.Println(res.Code)
	if c.Stats {
		printStats(os.Stdout, res)
	}

	if c.Save {
		if rec.Name == "" {
			return errors.New("--save requires --name or a named record file")
		}
		st, closeDB, err := openStore(c.DB, rc.log)
		if err != nil {
			return err
		}
		defer closeDB()
		return st.SaveLocation(models.Location{
			Name:      rec.Name,
			Southern:  rec.Southern,
			Precip:    rec.Precip,
			Temp:      rec.Temp,
			Code:      res.Code,
			Threshold: res.Threshold,
			TempMean:  res.Stats.TempMean,
			PrecipSum: res.Stats.PrecipSum,
		})
	}
	return nil
}

func printStats(w *os.File, res koppen.Result) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "precip threshold\t%.1f mm\n", res.Threshold)
	fmt.Fprintf(tw, "mean temperature\t%.1f °C\n", res.Stats.TempMean)
	fmt.Fprintf(tw, "min temperature\t%.1f °C\n", res.Stats.TempMin)
	fmt.Fprintf(tw, "max temperature\t%.1f °C\n", res.Stats.TempMax)
	fmt.Fprintf(tw, "months above 10 °C\t%d\n", res.Stats.MonthsAbove10C)
	fmt.Fprintf(tw, "annual precipitation\t%.1f mm\n", res.Stats.PrecipSum)
	fmt.Fprintf(tw, "driest month\t%.1f mm\n", res.Stats.PrecipMin)
	fmt.Fprintf(tw, "summer precip min/max\t%.1f / %.1f mm\n", res.Stats.PrecipSummerMin, res.Stats.PrecipSummerMax)
	fmt.Fprintf(tw, "winter precip min/max\t%.1f / %.1f mm\n", res.Stats.PrecipWinterMin, res.Stats.PrecipWinterMax)
	tw.Flush()
}

type HythergraphCmd struct {
	monthlyInput
	Title string `help:"Chart title. Defaults to the record name and code."`
	Out   string `help:"Output PNG path." default:"hythergraph.png"`
}

func (c *HythergraphCmd) Run(rc *runCtx) error {
	rec, err := c.record()
	if err != nil {
		return err
	}

	title := c.Title
	if title == "" {
		res, err := koppen.Classify(rec.Precip, rec.Temp, rec.Southern)
		if err != nil {
			return err
		}
		warnIfUnknown(rc.log, rec.Name, res)
		if rec.Name != "" {
			title = fmt.Sprintf("%s (%s)", rec.Name, res.Code)
		} else {
			title = res.Code
		}
	}

	data, err := hythergraph.RenderPNG(rec.Precip, rec.Temp, title)
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.Out, data, 0o644); err != nil {
		return err
	}
	rc.log.Infow("wrote hythergraph", "path", c.Out, "bytes", len(data))
	return nil
}

type ServeCmd struct {
	Addr string `help:"HTTP listen address." default:":8080" env:"KOPPEN_ADDR"`
	DB   string `help:"Path to the SQLite database." default:"data/koppen.db" env:"KOPPEN_DB"`
}

func (c *ServeCmd) Run(rc *runCtx) error {
	st, closeDB, err := openStore(c.DB, rc.log)
	if err != nil {
		return err
	}
	defer closeDB()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return api.NewServer(st, c.Addr, rc.log).Run(ctx)
}

type LocationsCmd struct {
	List LocationsListCmd `cmd:"" help:"List saved locations."`
	Show LocationsShowCmd `cmd:"" help:"Show one saved location as JSON."`
	Rm   LocationsRmCmd   `cmd:"" help:"Delete a saved location."`

	DB string `help:"Path to the SQLite database." default:"data/koppen.db" env:"KOPPEN_DB"`
}

type LocationsListCmd struct {
	Code string `help:"Only show locations with this Köppen code."`
}

func (c *LocationsListCmd) Run(rc *runCtx, parent *LocationsCmd) error {
	st, closeDB, err := openStore(parent.DB, rc.log)
	if err != nil {
		return err
	}
	defer closeDB()

	var locations []models.Location
	if c.Code != "" {
		locations, err = st.ListLocationsByCode(c.Code)
	} else {
		locations, err = st.ListLocations()
	}
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tCODE\tMEAN °C\tANNUAL MM")
	for _, loc := range locations {
		fmt.Fprintf(tw, "%s\t%s\t%.1f\t%.1f\n", loc.Name, loc.Code, loc.TempMean, loc.PrecipSum)
	}
	return tw.Flush()
}

type LocationsShowCmd struct {
	Name string `arg:"" help:"Location name."`
}

func (c *LocationsShowCmd) Run(rc *runCtx, parent *LocationsCmd) error {
	st, closeDB, err := openStore(parent.DB, rc.log)
	if err != nil {
		return err
	}
	defer closeDB()

	loc, err := st.GetLocation(c.Name)
	if err != nil {
		return err
	}
	if loc == nil {
		return fmt.Errorf("location %q not found", c.Name)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(loc)
}

type LocationsRmCmd struct {
	Name string `arg:"" help:"Location name."`
}

func (c *LocationsRmCmd) Run(rc *runCtx, parent *LocationsCmd) error {
	st, closeDB, err := openStore(parent.DB, rc.log)
	if err != nil {
		return err
	}
	defer closeDB()

	deleted, err := st.DeleteLocation(c.Name)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("location %q not found", c.Name)
	}
	return nil
}

func openStore(path string, log *zap.SugaredLogger) (*store.Store, func(), error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")

	st := store.New(db, log)
	if err := st.Migrate(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	return st, func() { db.Close() }, nil
}

func warnIfUnknown(log *zap.SugaredLogger, name string, res koppen.Result) {
	if res.Code != koppen.CodeUnknown {
		return
	}
	log.Warnw("classification fell through every group rule",
		"name", name,
		"temp_min", res.Stats.TempMin,
		"temp_max", res.Stats.TempMax,
		"precip_sum", res.Stats.PrecipSum,
		"threshold", res.Threshold,
	)
}
