package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/josephgoksu/taskman/models"
	"github.com/josephgoksu/taskman/store"
)

// HandleFatalError handles unrecoverable errors that should terminate the application.
func HandleFatalError(userMsg string, technicalErr error) {
	PrintError(userMsg, technicalErr)
	os.Exit(1)
}

// PrintError prints an error message without exiting, allowing for recovery.
func PrintError(userMsg string, technicalErr error) {
	if viper.GetBool("verbose") && technicalErr != nil {
		// In verbose mode, print the detailed, underlying technical error.
		fmt.Fprintf(os.Stderr, "Error: %v\n", technicalErr)
	} else {
		// By default, print the clean, user-friendly message.
		fmt.Fprintln(os.Stderr, userMsg)
	}
}

// userMessage maps an error returned by a command to the message shown without --verbose.
func userMessage(err error) string {
	var storageErr *store.StorageError
	var validationErr *models.ValidationError

	switch {
	case errors.Is(err, store.ErrAmbiguousID):
		return fmt.Sprintf("Error: %v. Use more characters of the ID.", err)
	case errors.Is(err, store.ErrNotFound):
		return fmt.Sprintf("Error: %v. Run 'taskman list --show-id' to see task IDs.", err)
	case errors.As(err, &validationErr):
		return fmt.Sprintf("Error: invalid input: %v", validationErr)
	case errors.Is(err, models.ErrValidation):
		return fmt.Sprintf("Error: invalid input: %v", err)
	case errors.As(err, &storageErr):
		return fmt.Sprintf("Error: could not %s task file %s: %v", storageVerb(storageErr.Op), storageErr.Path, storageErr.Err)
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}

func storageVerb(op string) string {
	switch op {
	case "read":
		return "read"
	case "decode":
		return "parse"
	case "encode":
		return "encode"
	case "backup":
		return "back up"
	default:
		return "write"
	}
}
