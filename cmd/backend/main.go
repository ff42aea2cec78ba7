package main

import (
	"itsupport/internal/api"
)

// @title IT Support Pro API
// @version 1.0
// @description API du site vitrine et de gestion des demandes de service.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	api.StartServer()
}
