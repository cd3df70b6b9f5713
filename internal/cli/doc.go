// Package cli implements the tote command line. The shop command starts the
// interactive storefront; the remaining commands read or change the saved
// cart directly and support --format text|json|yaml.
package cli
