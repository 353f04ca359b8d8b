// Package svc provides the service layer behind the repotools commands.
//
// Subpackages:
//   - modernizer: tox.ini upgrade to Python 3.8 and Django 2.2
//   - oep2: openedx.yaml sync between the registry and repositories
package svc
