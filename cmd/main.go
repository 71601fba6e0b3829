package main

import (
	"flag"
	"fmt"
	"os"

	"imap-unseen-preview/internal/config"
	imapclient "imap-unseen-preview/internal/imap"
	"imap-unseen-preview/internal/logging"
	"imap-unseen-preview/internal/preview"
	"imap-unseen-preview/internal/report"
)

func main() {
	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s <config-file>\n\n", os.Args[0])
		_, _ = fmt.Fprintln(os.Stderr, "Prints the unseen message count of an IMAP mailbox and previews the newest unseen messages.")
		_, _ = fmt.Fprintln(os.Stderr, "Recognized keys: host, port, user, password, mailbox, preview, readonly, log_level, keyring_service.")
		_, _ = fmt.Fprintln(os.Stderr, "readonly accepts true/false, yes/no, on/off or 1/0.")
	}
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Print(report.ErrPrefix + "No configuration file.\n")
		flag.Usage()
		os.Exit(1)
	}

	fmt.Print(run(flag.Arg(0), imapclient.NewStandardClient()))
}

// run loads the configuration, previews the mailbox and returns the text to print on stdout
func run(path string, client imapclient.Client) string {
	cfg, err := config.Load(path)
	if err != nil {
		return report.Failure(err)
	}

	if err := logging.SetLevel(cfg.LogLevel); err != nil {
		logging.Log.Warnf("Ignoring log level %q: %v", cfg.LogLevel, err)
	}

	result, err := preview.NewProcessor(client, cfg).Run()
	if err != nil {
		logging.Log.WithError(err).Error("Preview failed")
		return report.Failure(err)
	}

	return result.String()
}
