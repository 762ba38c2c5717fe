// Package harness provides conformance testing for sharpj transpilation.
//
// The harness loads a program document, runs it through the pipeline and
// checks the emitted text (or the failure) against the scenario's
// expectations.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	input: ../programs/calculator.cue
//	target: java        # optional, default java
//	fold: false         # optional, default true
//	expect:
//	  output: ../expected/calculator.java
//	  contains:
//	    - "int x = 14;"
//	  not_contains:
//	    - "(2 + (3 * 4))"
//
// A scenario that should fail names the error code instead:
//
//	expect:
//	  error_code: E101
//
// Paths are relative to the scenario file.
//
// # Deterministic Testing
//
// Every scenario runs against a fresh in-memory SQLite store with
// sequential run IDs ("run-0001", ...), so results are reproducible and can
// be compared against golden files with RunWithGolden.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/calculator.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
package harness
