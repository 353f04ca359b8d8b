// Package oep2 synchronizes the repository registry with the per-repository
// openedx.yaml files described by OEP-2.
//
// Explode reads the registry (a YAML mapping of "owner/repo" to metadata),
// renders one openedx.yaml per repository and delivers it through a branch
// and pull request. Implode walks organizations and gathers the openedx.yaml
// files back into a single mapping.
package oep2
