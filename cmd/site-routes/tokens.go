package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// readToken runs tokenCmd and takes the first line of its output.  Without a command, the token
// comes from envVar instead.
func readToken(tokenCmd []string, envVar string) (string, error) {
	if len(tokenCmd) < 1 {
		token := strings.TrimSpace(os.Getenv(envVar))
		if token == "" {
			return "", fmt.Errorf("site-routes: no token command configured and %s is not set", envVar)
		}
		return token, nil
	}

	tokenCmdOutput, err := exec.Command(tokenCmd[0], tokenCmd[1:]...).Output()
	if err != nil {
		return "", fmt.Errorf("site-routes: couldn't execute token command '%v': %w", tokenCmd, err)
	}

	token := strings.TrimSpace(strings.Split(string(tokenCmdOutput), "\n")[0])
	if token == "" {
		return "", fmt.Errorf("site-routes: token command '%v' printed nothing", tokenCmd)
	}
	return token, nil
}
