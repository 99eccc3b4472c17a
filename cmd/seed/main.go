package main

import (
	"flag"
	"log"
	"time"

	"github.com/smallbiznis/menara/internal/seed"
)

func main() {
	opts := seed.DefaultOptions()

	flag.StringVar(&opts.OutDir, "out", opts.OutDir, "directory to write the dataset CSVs into")
	flag.IntVar(&opts.Subscribers, "subscribers", opts.Subscribers, "number of subscribers to generate")
	flag.IntVar(&opts.BillMonths, "bill-months", opts.BillMonths, "billing cycles per subscriber")
	flag.IntVar(&opts.Tickets, "tickets", opts.Tickets, "number of support tickets to generate")
	flag.IntVar(&opts.UsageDays, "usage-days", opts.UsageDays, "days of usage records per subscriber")
	flag.Int64Var(&opts.Seed, "seed", opts.Seed, "random seed")
	flag.Parse()

	opts.Now = time.Now().UTC()

	started := time.Now()
	if err := seed.Generate(opts); err != nil {
		log.Fatalf("seed: %v", err)
	}
	log.Printf("seed: wrote dataset to %s in %s", opts.OutDir, time.Since(started).Round(time.Millisecond))
}
