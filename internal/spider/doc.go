// Package spider orchestrates the Screaming Frog SEO Spider command-line
// launcher.
//
// It builds headless crawl and re-export invocations with the export flags the
// report package expects, injects basic-auth credentials into crawl URLs, and
// exposes Cobra command builders for the crawl, from-db, inlinks, and spider
// subcommands. Process execution flows through execshell so crawls remain
// testable without the launcher installed.
package spider
