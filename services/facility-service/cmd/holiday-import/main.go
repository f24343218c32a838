package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/md-rashed-zaman/facilitycal/libs/config"
	"github.com/md-rashed-zaman/facilitycal/libs/db"
	"github.com/md-rashed-zaman/facilitycal/services/facility-service/internal/holidays"
	"github.com/md-rashed-zaman/facilitycal/services/facility-service/internal/storage"
)

func main() {
	_ = config.LoadDotEnv()
	year := time.Now().Year()
	var (
		dbURL    = flag.String("database-url", config.String("DATABASE_URL", ""), "postgres url")
		csvPath  = flag.String("csv", "", "CSV file with local_date,country,label columns")
		calendar = flag.String("calendar", "", "built-in calendar to generate ("+strings.Join(holidays.KnownCalendars(), ", ")+")")
		from     = flag.Int("from", year, "first year to generate")
		to       = flag.Int("to", year+1, "last year to generate")
		actual   = flag.Bool("actual", false, "use actual instead of observed dates for generated holidays")
		dryRun   = flag.Bool("dry-run", false, "print holidays instead of importing them")
	)
	flag.Parse()

	var src holidays.Source
	switch {
	case *csvPath != "" && *calendar != "":
		fatal("use either -csv or -calendar, not both")
	case *csvPath != "":
		src = holidays.CSVSource{Path: *csvPath}
	case *calendar != "":
		src = holidays.CalendarSource{Country: *calendar, FromYear: *from, ToYear: *to, Observed: !*actual}
	default:
		fatal("one of -csv or -calendar is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	hs, err := src.Holidays(ctx)
	if err != nil {
		fatal(err.Error())
	}
	if *dryRun {
		for _, h := range hs {
			fmt.Printf("%s\t%s\t%s\n", h.Date, h.Country, h.Name)
		}
		return
	}

	if strings.TrimSpace(*dbURL) == "" {
		fatal("DATABASE_URL is required")
	}
	pool, err := db.Open(ctx, *dbURL, db.Options{MaxConns: 2})
	if err != nil {
		fatal(err.Error())
	}
	defer pool.Close()
	if err := storage.EnsureSchema(ctx, pool); err != nil {
		fatal(err.Error())
	}

	repo := storage.NewHolidayRepository(pool)
	n, err := repo.Import(ctx, hs)
	if err != nil {
		fatal(err.Error())
	}
	counts, err := repo.CountByCountry(ctx)
	if err != nil {
		fatal(err.Error())
	}
	fmt.Printf("imported %d holidays\n", n)
	countries := make([]string, 0, len(counts))
	for c := range counts {
		countries = append(countries, c)
	}
	sort.Strings(countries)
	for _, c := range countries {
		fmt.Printf("  %s: %d\n", c, counts[c])
	}
}

func fatal(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
