package main

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/trezcool/mahudhurio/core/attendance"
	"github.com/trezcool/mahudhurio/core/batch"
	"github.com/trezcool/mahudhurio/core/student"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	db      *sql.DB
	stdRepo student.Repository
	bchRepo batch.Repository
	attRepo attendance.Repository
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [args] - run DB migrations (up, down, status, create NAME sql, ...)")
	fmt.Println("  seed - load demo batches, students and attendance records")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "seed":
		return cli.seed()
	default:
		cli.printUsage()
		return errHelp
	}
}
