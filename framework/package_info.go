// Package framework contains the low-level test harness infrastructure that does not
// know anything about Kestrun or about what is being tested. The base package holds
// shared types such as Logger and Capabilities; other components are in the
// subpackages harness and ktest.
//
// The general model is:
//
// 1. The harness communicates with a single example application. It can either launch
// the application as a child process or attach to one that is already running, and it
// verifies that the application is responding before any tests run.
//
// 2. The harness can expose any number of mock endpoints to receive requests that the
// application makes back to it, such as webhook deliveries.
//
// 3. There is a general notion of a test scope which is similar to Go's testing.T,
// allowing pieces of test logic to be associated with a test identifier and to
// accumulate success/failure results.
//
// The domain-specific code that knows what is being tested is responsible for
// providing the routes to exercise, the expected responses, the HTTP handlers for
// mock endpoints, and domain-specific test APIs on top of the test scope.
package framework
