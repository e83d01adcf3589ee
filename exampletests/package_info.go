// Package exampletests contains the Kestrun-specific conformance test logic.
//
// Tests in this package use other packages as follows:
//
// data: embedded route tables, OpenAPI fixtures, and the data file loader
//
// ktest: the basic test scope framework
//
// mocksink: mock services the harness hosts for apps to call out to
//
// appdef: types and constants describing an example app under test
package exampletests
