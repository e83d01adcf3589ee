// Package appdef contains the harness's model of an example app under test: the
// status document it must serve, the capability names it can advertise, and the
// environment variables the harness passes to it at launch.
package appdef
