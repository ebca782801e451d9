// Package security decides whether a parsed invocation may execute.
//
// Validation is policy, not syntax: it exists so LLM-generated text can
// never become uncontrolled code execution. Every check runs against the
// catalog snapshot supplied for the run, never a hard-coded list.
package security

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/doeshing/vox-go/internal/domain"
	"github.com/doeshing/vox-go/internal/ports"
)

// Shell metacharacters that would let an argument escape its boundary if
// the command were ever re-interpreted by a shell: chain separators,
// pipes, redirection, command substitution.
var unsafeArgumentPattern = regexp.MustCompile("[;|&<>`]|\\$\\(")

// CatalogValidator checks invocations against a catalog snapshot.
type CatalogValidator struct{}

// NewCatalogValidator builds a validator.
func NewCatalogValidator() *CatalogValidator {
	return &CatalogValidator{}
}

// Validate implements ports.CommandValidator. Checks run in order and
// short-circuit on the first failure:
//
//  1. the command name must exist in the catalog
//  2. the argument count must fit the descriptor's required..total range
//  3. no argument may carry shell metacharacters, unless the descriptor
//     declares raw_shell and the run's policy permits it
func (v *CatalogValidator) Validate(inv domain.CommandInvocation, catalog domain.Catalog, allowRawShell bool) domain.Verdict {
	descriptor, ok := catalog.Lookup(inv.Name)
	if !ok {
		return domain.Reject(inv, domain.RejectUnknownCommand,
			fmt.Sprintf("unknown command %q; available: %s", inv.Name, strings.Join(catalog.Names(), ", ")))
	}

	required := descriptor.RequiredArity()
	total := len(descriptor.Parameters)
	if len(inv.Args) < required || len(inv.Args) > total {
		return domain.Reject(inv, domain.RejectArityMismatch,
			fmt.Sprintf("%s expects %s, got %d", inv.Name, arityRange(required, total), len(inv.Args)))
	}

	rawShellPermitted := descriptor.RawShell && allowRawShell
	if !rawShellPermitted {
		for _, arg := range inv.Args {
			if unsafeArgumentPattern.MatchString(arg) {
				return domain.Reject(inv, domain.RejectUnsafeArgument,
					fmt.Sprintf("argument %q contains shell metacharacters", arg))
			}
		}
	}

	return domain.Accept(inv)
}

func arityRange(required, total int) string {
	switch {
	case required == total && required == 1:
		return "1 argument"
	case required == total:
		return fmt.Sprintf("%d arguments", required)
	default:
		return fmt.Sprintf("%d to %d arguments", required, total)
	}
}

var _ ports.CommandValidator = (*CatalogValidator)(nil)
