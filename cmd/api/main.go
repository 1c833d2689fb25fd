// @title Gestión de citas veterinarias
// @version 1.0
// @description Agenda de citas entre mascotas y veterinarios.
// @BasePath /
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
