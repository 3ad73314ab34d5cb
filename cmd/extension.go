package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

// Environment of the extensions, resolved from the configuration and the
// global flags.
const (
	EnvActionsFile   = "STMT_ACTIONS_FILE"
	EnvCorporateFile = "STMT_CORPORATE_FILE"
	EnvScenarioFile  = "STMT_SCENARIO_FILE"
	EnvCurrency      = "STMT_CURRENCY"
	EnvVerbose       = "STMT_VERBOSE"
)

// RunExtension attempts to find and execute an external stmt-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "stmt-" + subcommand

	// Look for the external command in PATH
	log := Logger()
	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		log.Debug("no extension", "command", externalCmdName, "error", err)
		return false, 0
	}

	cfg, err := Settings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return true, 1
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	cmd.Env = os.Environ()
	cmd.Env = append(cmd.Env,
		EnvActionsFile+"="+cfg.Actions,
		EnvCorporateFile+"="+cfg.Corporate,
		EnvScenarioFile+"="+cfg.Scenario,
		EnvCurrency+"="+cfg.Currency,
		EnvVerbose+"="+strconv.FormatBool(*Verbose),
	)
	log.Debug("running extension", "path", lp, "args", args)

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}
	return true, 0
}
