package main

import (
	"log"

	"oioi/internal/config"
	"oioi/server"
)

func main() {

	conf, err := config.GetConfig()
	if err != nil {
		log.Println("configuration load failed", err)
		return
	}

	partnerSystem, err := server.NewPartnerSystem(conf)
	if err != nil {
		log.Println("partner system initialization failed", err)
		return
	}
	partnerSystem.Start()

}
