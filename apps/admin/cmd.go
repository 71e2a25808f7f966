package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/mnogodumalon/kurs96/core"
	"github.com/mnogodumalon/kurs96/core/catalog"
	"github.com/mnogodumalon/kurs96/core/dashboard"
	"github.com/mnogodumalon/kurs96/core/record"
	dummystore "github.com/mnogodumalon/kurs96/storage/dummy"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	catalogSvc   *catalog.Service
	dashboardSvc *dashboard.Service
	out          io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  seed [-courses N] [-dry]  - populate the backend with sample course data")
	fmt.Fprintln(cli.out, "  stats                     - print the dashboard summary")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	seedCmd := flag.NewFlagSet("seed", flag.ContinueOnError)
	seedCourses := seedCmd.Int("courses", 4, "Number of sample courses to create.")
	seedDry := seedCmd.Bool("dry", false, "Seed an in-memory store instead of the backend.")

	switch args[1] {
	case "seed":
		if err := seedCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *seedCourses < 1 {
			seedCmd.Usage()
			return errHelp
		}
		if *seedDry {
			return dryCommandLine(cli.out).seed(*seedCourses)
		}
		return cli.seed(*seedCourses)
	case "stats":
		return cli.stats()
	default:
		cli.printUsage()
		return errHelp
	}
}

// dryCommandLine targets a fresh in-memory store, leaving the backend untouched.
func dryCommandLine(out io.Writer) *commandLine {
	validate, translator := core.NewValidator()
	catalog.RegisterValidators(validate, translator)

	svc := catalog.NewService(
		dummystore.Open(),
		record.RefMaker{Base: "https://dry.local"},
		catalog.AppIDs{
			Lecturers:    "dry-lecturers",
			Participants: "dry-participants",
			Rooms:        "dry-rooms",
			Courses:      "dry-courses",
			Enrollments:  "dry-enrollments",
		},
		validate,
	)
	return &commandLine{
		catalogSvc:   svc,
		dashboardSvc: dashboard.NewService(svc),
		out:          out,
	}
}
