package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/trezcool/placement/core"
	"github.com/trezcool/placement/core/directory"
	emailsvc "github.com/trezcool/placement/services/email"
	logsvc "github.com/trezcool/placement/services/logger"
	inmemdb "github.com/trezcool/placement/storage/database/inmem"
	"github.com/trezcool/placement/storage/session"
)

func main() {
	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	svc, err := newDirectory(conf, logger)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up directory: %v", err), err)
	}

	cli := commandLine{svc: svc, out: os.Stdout}
	if err := cli.run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}

// newDirectory opens a freshly seeded roster sharing the session slot with the API.
func newDirectory(conf *core.Config, logger core.Logger) (*directory.Service, error) {
	repo := inmemdb.NewStudentRepository(inmemdb.Open())
	if err := directory.Seed(repo); err != nil {
		return nil, err
	}
	slot, err := session.NewFileSlot(conf.Directory.SessionDir, conf.Directory.SessionSlot)
	if err != nil {
		return nil, err
	}
	return directory.NewService(conf, repo, slot, emailsvc.NewConsoleService(conf, logger), logger)
}
