package main

import (
	"log"
	"os"

	"github.com/mnogodumalon/kurs96/core"
	"github.com/mnogodumalon/kurs96/core/catalog"
	"github.com/mnogodumalon/kurs96/core/dashboard"
	"github.com/mnogodumalon/kurs96/core/record"
	"github.com/mnogodumalon/kurs96/storage/livingapps"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf, err := core.NewConfig()
	errAndDie(err)

	validate, translator := core.NewValidator()
	catalog.RegisterValidators(validate, translator)

	store := livingapps.NewStore(livingapps.Options{
		BaseURL: conf.LivingApps.BaseURL,
		Token:   conf.LivingApps.Token,
		Timeout: conf.LivingApps.Timeout,
	})
	refs := record.RefMaker{Base: conf.LivingApps.BaseURL}
	catalogSvc := catalog.NewService(store, refs, catalog.AppIDs{
		Lecturers:    conf.LivingApps.LecturersAppID,
		Participants: conf.LivingApps.ParticipantsAppID,
		Rooms:        conf.LivingApps.RoomsAppID,
		Courses:      conf.LivingApps.CoursesAppID,
		Enrollments:  conf.LivingApps.EnrollmentsAppID,
	}, validate)

	// start CLI
	cli := commandLine{
		catalogSvc:   catalogSvc,
		dashboardSvc: dashboard.NewService(catalogSvc),
		out:          os.Stdout,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
