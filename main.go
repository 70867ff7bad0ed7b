package main

import (
	"github.com/webanalyzer/webaudit/cmd"
)

func main() {
	cmd.Execute()
}
