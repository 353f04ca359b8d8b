// Package modernizer upgrades the Python/Django test matrix of a tox.ini file.
//
// A Modernizer validates the document eagerly, then rewrites two fields:
// the [tox] envlist factors become py{38} and django{22}, and the [testenv]
// deps block drops Django 1.11/2.0/2.1 pins in favour of a single Django 2.2
// pin. The result is written back atomically over the source file.
package modernizer
