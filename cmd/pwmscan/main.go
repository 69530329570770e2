package main

import (
	"pwmscan/internal/app"
	"pwmscan/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
