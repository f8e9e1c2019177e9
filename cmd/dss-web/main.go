package main

import (
	"os"

	"tarediiran-industries.com/rail-dss/internal/web/dashboard_web"
)

func main() {
	os.Exit(dashboard_web.Main(os.Args[0], os.Args[1:], os.Stdout, os.Stderr))
}
