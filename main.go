package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Perdyx/auto-recon/internal/cli"
	"github.com/Perdyx/auto-recon/internal/exec"
)

func main() {
	// Clean up child processes (subfinder, nmap, ...) on interrupt.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Fprintf(os.Stderr, "\n[!] interrupted, cleaning up\n")
		exec.KillAllProcesses()
		os.Exit(130)
	}()

	if err := cli.Execute(); err != nil {
		exec.KillAllProcesses()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
