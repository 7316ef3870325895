package changelog

// Assemble builds the updated document: newReleases first, then existing,
// each side keeping its own order. Nothing is deduplicated, sorted or
// validated; callers supply releases newer than everything already persisted.
func Assemble(newReleases, existing []Release) *Changelog {
	releases := make([]Release, 0, len(newReleases)+len(existing))
	releases = append(releases, newReleases...)
	releases = append(releases, existing...)
	return &Changelog{Releases: releases}
}
