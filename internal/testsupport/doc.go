// Package testsupport provides helpers shared by package tests: temp-dir
// seeded configs, fixture files, and on-disk catalog builders.
package testsupport
