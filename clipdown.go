// Package clipdown extracts the main readable content from a web page and
// converts it into a Markdown document with an optional frontmatter header.
// It identifies the article body among page boilerplate (navigation, ads,
// sidebars), transcodes the markup into Markdown, and resolves images and
// links to absolute references.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency or concern (e.g., goquery/, markdown/,
// rod/).
package clipdown
