package cmd

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/theca/internal/configs"
	kerrors "github.com/PolarWolf314/theca/internal/errors"
	"github.com/PolarWolf314/theca/internal/secrets"
	"github.com/PolarWolf314/theca/internal/utils"
)

// setupTestEnvironment points theca at a temporary profile folder and config
// file with a cheap KDF, and returns the profile folder.
func setupTestEnvironment(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	folder := filepath.Join(home, "profiles")
	configPath := filepath.Join(home, "config", "config.toml")

	t.Setenv("HOME", home)
	t.Setenv("THECA_PROFILE_FOLDER", folder)
	t.Setenv("THECA_CONFIG", configPath)
	t.Setenv("THECA_DEFAULT_PROFILE", "")
	t.Setenv("THECA_KEY", "")
	t.Setenv("NO_COLOR", "1")

	config := &configs.UserConfig{KDF: secrets.KDFParams{Time: 1, Memory: 64, Threads: 1}}
	if err := configs.SaveUserConfig(configPath, config); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	originalRead := readPassphrase
	originalStdin := stdin
	originalReadStdin := readStdin
	readPassphrase = func(string) ([]byte, error) {
		return nil, kerrors.ErrNoPassphrase
	}
	stdin = strings.NewReader("")
	readStdin = func() ([]byte, error) {
		return utils.ReadAllFrom(stdin)
	}

	// Cleanup function to restore original state
	t.Cleanup(func() {
		readPassphrase = originalRead
		stdin = originalStdin
		readStdin = originalReadStdin
		ResetGlobalState()
	})

	return folder
}

// setStdin feeds input to confirmations and stdin bodies.
func setStdin(input string) {
	stdin = strings.NewReader(input)
}

// runTheca executes the command tree with args and returns the combined
// output.
func runTheca(t *testing.T, args ...string) (string, error) {
	t.Helper()
	ResetGlobalState()
	RootCmd.SetArgs(args)
	return captureOutput(Execute)
}

// mustRunTheca is runTheca failing the test on error.
func mustRunTheca(t *testing.T, args ...string) string {
	t.Helper()
	output, err := runTheca(t, args...)
	if err != nil {
		t.Fatalf("theca %s failed: %v\nOutput: %s", strings.Join(args, " "), err, output)
	}
	return output
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	// Save original stdout and stderr
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	// Create pipes to capture output
	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	// Replace stdout and stderr
	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	// Channel to collect output
	outputChan := make(chan string, 2)

	// Start goroutines to read from pipes
	go func() {
		var buf bytes.Buffer
		_, err := io.Copy(&buf, stdoutReader)
		if err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		_, err := io.Copy(&buf, stderrReader)
		if err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	// Execute the function
	err := fn()

	// Close writers to signal EOF
	stdoutWriter.Close()
	stderrWriter.Close()

	// Restore original stdout and stderr
	os.Stdout = originalStdout
	os.Stderr = originalStderr

	// Collect output
	stdout := <-outputChan
	stderr := <-outputChan

	return stdout + stderr, err
}
