package main

import (
	"log"
	"os"

	echoapi "github.com/mnogodumalon/kurs96/apps/api/echo"
	"github.com/mnogodumalon/kurs96/core"
	"github.com/mnogodumalon/kurs96/core/catalog"
	"github.com/mnogodumalon/kurs96/core/dashboard"
	"github.com/mnogodumalon/kurs96/core/record"
	logsvc "github.com/mnogodumalon/kurs96/services/logger"
	"github.com/mnogodumalon/kurs96/storage/livingapps"
)

func main() {
	logger := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf, err := core.NewConfig()
	errAndDie(logger, err)

	validate, translator := core.NewValidator()
	catalog.RegisterValidators(validate, translator)

	var logSvc core.Logger
	if conf.Debug {
		logSvc = logsvc.NewConsoleLogger(logger)
	} else {
		logSvc = logsvc.NewRollbarLogger(logger, conf)
	}

	// set up the backend access layer and services
	store := livingapps.NewStore(livingapps.Options{
		BaseURL: conf.LivingApps.BaseURL,
		Token:   conf.LivingApps.Token,
		Timeout: conf.LivingApps.Timeout,
	})
	refs := record.RefMaker{Base: conf.LivingApps.BaseURL}
	catalogSvc := catalog.NewService(store, refs, appIDs(conf), validate)
	dashboardSvc := dashboard.NewService(catalogSvc)

	// start API server
	app := echoapi.NewServer(&echoapi.Options{
		Address:      conf.Server.Addr,
		Conf:         conf,
		Logger:       logSvc,
		Translator:   translator,
		CatalogSvc:   catalogSvc,
		DashboardSvc: dashboardSvc,
	})
	app.Start()
}

func appIDs(conf *core.Config) catalog.AppIDs {
	return catalog.AppIDs{
		Lecturers:    conf.LivingApps.LecturersAppID,
		Participants: conf.LivingApps.ParticipantsAppID,
		Rooms:        conf.LivingApps.RoomsAppID,
		Courses:      conf.LivingApps.CoursesAppID,
		Enrollments:  conf.LivingApps.EnrollmentsAppID,
	}
}

func errAndDie(logger *log.Logger, err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
