package main

import (
	"fmt"

	"github.com/fwojciec/readdoc"
	"github.com/fwojciec/readdoc/jwt"
)

// Run executes the token command.
func (c *TokenCmd) Run(deps *Dependencies) error {
	token, err := jwt.Issue([]byte(c.Secret), c.UserID, c.TTL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", readdoc.ErrorMessage(err))
		return err
	}
	fmt.Fprintln(deps.Stdout, token)
	return nil
}
