// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
)

type Id int

const (
	FileNotFoundId Id = iota + 1
	ConfigLoadFailedId
	ConfigDirUnavailableId
	EntrypointNotFoundId
	PermissionDeniedId
	ConfirmationRequiredId
	CommandFailedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink
	extLinks []HttpLink // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue with the named glamour style ("dark", "light", "notty").
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range slices.Concat(i.docLinks, i.extLinks) {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	fileNotFoundIssue = &Issue{
		id: FileNotFoundId,
		mdMsg: `
# File not found!

The file you passed does not exist or is not a regular file.

## Things you can try:
- Check the path for typos
- Use an absolute path, relative paths are resolved from the current directory
- List the available dumps:
~~~
$ ls backups/
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

An option in the configuration file or environment is invalid. Values read
before it are kept and the rest fall back to their defaults.

## Common issues:
- A line that is neither ` + "`[section]`" + ` nor ` + "`option = value`" + `
- A boolean that is not one of true, on, false or off
- A number that does not parse, or is outside the allowed range

## Things you can try:
- Show where the file lives:
~~~
$ teactl config path
~~~
- Fix or remove the offending option, then check the result:
~~~
$ teactl config list
~~~`,
		extLinks: []HttpLink{"https://en.wikipedia.org/wiki/INI_file"},
	}

	configDirUnavailableIssue = &Issue{
		id: ConfigDirUnavailableId,
		mdMsg: `
# Configuration directory unavailable!

teactl could not work out where its configuration lives.

## Things you can try:
- Make sure HOME (or APPDATA on Windows) is set
- Point teactl at a file explicitly:
~~~
$ teactl --config ./teactl.ini config list
~~~`,
	}

	entrypointNotFoundIssue = &Issue{
		id: EntrypointNotFoundId,
		mdMsg: `
# Management entrypoint not found!

The program configured to run management commands is not on your PATH.

## Things you can try:
- Activate the project's virtual environment
- Check the configured entrypoint:
~~~
$ teactl config list
~~~
- Set it to the right command line:
~~~
$ teactl config set manage "poetry run python manage.py"
~~~`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

teactl was not allowed to read or write a file it needs.

## Things you can try:
- Check the permissions of the configuration file and its directory
- Check the permissions of the backup directory
- Run with --verbose to see which path failed`,
	}

	confirmationRequiredIssue = &Issue{
		id: ConfirmationRequiredId,
		mdMsg: `
# Confirmation required!

Loading a dump drops and recreates the database, and there is no terminal
to ask for confirmation.

## Things you can try:
- Confirm up front:
~~~
$ teactl db load --yes backups/shop.backup.gz
~~~`,
	}

	commandFailedIssue = &Issue{
		id: CommandFailedId,
		mdMsg: `
# Command failed!

An unexpected error stopped the command.

## Things you can try:
- Run again with --verbose for the full error chain
- Check the configuration:
~~~
$ teactl config list
~~~`,
	}

	issues = map[Id]*Issue{
		fileNotFoundIssue.Id():         fileNotFoundIssue,
		configLoadFailedIssue.Id():     configLoadFailedIssue,
		configDirUnavailableIssue.Id(): configDirUnavailableIssue,
		entrypointNotFoundIssue.Id():   entrypointNotFoundIssue,
		permissionDeniedIssue.Id():     permissionDeniedIssue,
		confirmationRequiredIssue.Id(): confirmationRequiredIssue,
		commandFailedIssue.Id():        commandFailedIssue,
	}
)

// Values returns every catalog entry ordered by ID.
func Values() []*Issue {
	values := slices.Collect(maps.Values(issues))
	slices.SortFunc(values, func(a, b *Issue) int { return cmp.Compare(a.id, b.id) })
	return values
}

func Get(id Id) *Issue {
	return issues[id]
}
