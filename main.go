/*
Copyright © 2025 nekesuresh
*/
package main

import (
	"github.com/joho/godotenv"
	"github.com/nekesuresh/RFP/cmd"
	log "github.com/sirupsen/logrus"
)

func main() {
	cmd.Execute()
}

func init() {
	if err := godotenv.Load(); err != nil {
		log.Warnln("No .env file loaded:", err)
	}
}
