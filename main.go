package main

import (
	"os"

	"creator-ledger/core/logger"
	"creator-ledger/core/server"
)

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
		os.Exit(1)
	}
}
