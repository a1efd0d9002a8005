package cli

import (
	"errors"
	"fmt"

	"github.com/oceanticsports/oceantic-admin/internal/client/page"
)

// errNoPage is returned by page commands before "use".
var errNoPage = errors.New("no resource selected (type 'use <resource>')")

// commandOrder is the order commands are listed by help.
var commandOrder = []string{
	"login", "logout", "whoami",
	"resources", "use", "parents", "parent",
	"list", "search", "filter", "categories", "page", "next", "prev", "refresh",
	"show", "proof",
	"add", "edit", "form", "set", "file", "removefile", "keepfile", "submit", "cancel",
	"delete", "status",
	"events", "export", "exports", "archive",
}

func (a *App) commandTable() map[string]command {
	return map[string]command{
		"login":  {usage: "login [username]", help: "sign in as an administrator", run: a.login},
		"logout": {usage: "logout", help: "forget the stored session", auth: true, run: a.logout},
		"whoami": {usage: "whoami", help: "show the signed-in administrator", auth: true, run: a.whoami},

		"resources": {usage: "resources", help: "list manageable resources", run: a.resources},
		"use":       {usage: "use <resource>", help: "open a resource page", auth: true, run: a.use},
		"parents":   {usage: "parents", help: "list parent records of the page", auth: true, run: a.parents},
		"parent":    {usage: "parent <id>", help: "switch the parent record", auth: true, run: a.parent},

		"list":       {usage: "list", help: "show the current page of records", auth: true, run: a.list},
		"search":     {usage: "search [text]", help: "filter records by text (empty clears)", auth: true, run: a.search},
		"filter":     {usage: "filter [value]", help: "filter records by category (empty clears)", auth: true, run: a.filter},
		"categories": {usage: "categories", help: "list filter values", auth: true, run: a.categories},
		"page":       {usage: "page <n>", help: "go to page n", auth: true, run: a.gotoPage},
		"next":       {usage: "next", help: "next page", auth: true, run: a.next},
		"prev":       {usage: "prev", help: "previous page", auth: true, run: a.prev},
		"refresh":    {usage: "refresh", help: "re-fetch the collection", auth: true, run: a.refresh},

		"show":  {usage: "show <id>", help: "show one record", auth: true, run: a.show},
		"proof": {usage: "proof <id>", help: "print the attached file URL", auth: true, run: a.proof},

		"add":        {usage: "add", help: "open an empty form", auth: true, run: a.add},
		"edit":       {usage: "edit <id>", help: "open a record for editing", auth: true, run: a.edit},
		"form":       {usage: "form", help: "show the open form", auth: true, run: a.showForm},
		"set":        {usage: "set <field> [value]", help: "set a form field", auth: true, run: a.set},
		"file":       {usage: "file <path>", help: "attach a local file", auth: true, run: a.file},
		"removefile": {usage: "removefile", help: "remove the stored file on submit", auth: true, run: a.removeFile},
		"keepfile":   {usage: "keepfile", help: "keep the stored file", auth: true, run: a.keepFile},
		"submit":     {usage: "submit", help: "validate and save the form", auth: true, run: a.submit},
		"cancel":     {usage: "cancel", help: "discard the form", auth: true, run: a.cancel},

		"delete": {usage: "delete <id>", help: "delete a record", auth: true, run: a.delete},
		"status": {usage: "status <id> <value>", help: "change a record's status", auth: true, run: a.setStatus},

		"events":  {usage: "events", help: "list events open for registration", auth: true, run: a.events},
		"export":  {usage: "export <excel|pdf> [event id]", help: "download an event book", auth: true, run: a.export},
		"exports": {usage: "exports [n]", help: "show recent exports", run: a.history},
		"archive": {usage: "archive", help: "retry failed export uploads", run: a.retryArchive},
	}
}

func (a *App) requirePage() (*page.Composer, error) {
	if a.page == nil {
		return nil, errNoPage
	}
	return a.page, nil
}

func usageError(usage string) error {
	return fmt.Errorf("usage: %s", usage)
}
