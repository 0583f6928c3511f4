package actions

import (
	"fmt"

	"github.com/gobuffalo/buffalo"

	"github.com/silinternational/cover-agri/api"
)

const (
	sessionKeyDeclarationTruthful = "declaration_truthful"
	sessionKeyDeclarationTerms    = "declaration_terms"
)

// sessionDeclaration returns the declaration accepted earlier in this session
func sessionDeclaration(c buffalo.Context) api.Declaration {
	truthful, _ := c.Session().Get(sessionKeyDeclarationTruthful).(bool)
	terms, _ := c.Session().Get(sessionKeyDeclarationTerms).(bool)
	return api.Declaration{Truthful: truthful, Terms: terms}
}

func setSessionDeclaration(c buffalo.Context, d api.Declaration) error {
	sess := c.Session()
	sess.Set(sessionKeyDeclarationTruthful, d.Truthful)
	sess.Set(sessionKeyDeclarationTerms, d.Terms)
	if err := sess.Save(); err != nil {
		return fmt.Errorf("setSessionDeclaration error, %w", err)
	}
	return nil
}

// clearSessionDeclaration forgets the declaration, so that the next draft must accept it again
func clearSessionDeclaration(c buffalo.Context) {
	sess := c.Session()
	sess.Delete(sessionKeyDeclarationTruthful)
	sess.Delete(sessionKeyDeclarationTerms)
	_ = sess.Save()
}
