// Copyright 2016 Google Inc. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Binary smtverify recomputes and checks sparse Merkle tree proofs from the
// command line, either for a single proof given on flags or for a batch of
// cases loaded from a YAML bundle file.
package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"
	"gopkg.in/yaml.v3"

	"github.com/nervosnetwork/smt-verify/smt"
)

var (
	rootHex   = flag.String("root", "", "hex-encoded 32-byte claimed root")
	proofHex  = flag.String("proof", "", "hex-encoded proof bytecode")
	assertHex = flag.String("assert", "", "comma-separated key:value hex pairs, e.g. aa..:bb..,cc..:dd..")
	bundle    = flag.String("bundle", "", "path to a YAML test-vector bundle; overrides -root/-proof/-assert")
	parallel  = flag.Int("parallel", 4, "worker count for -bundle batch verification")
)

// caseVector is one verification case in a YAML bundle file.
type caseVector struct {
	Name        string            `yaml:"name"`
	Root        string            `yaml:"root"`
	Proof       string            `yaml:"proof"`
	Assertions  map[string]string `yaml:"assertions"`
	WantInvalid bool              `yaml:"want_invalid"`
}

type bundleFile struct {
	Cases []caseVector `yaml:"cases"`
}

func main() {
	flag.Parse()
	defer glog.Flush()

	var err error
	if *bundle != "" {
		err = runBundle(*bundle, *parallel)
	} else {
		err = runSingle(*rootHex, *proofHex, *assertHex)
	}
	if err != nil {
		glog.Errorf("smtverify: %v", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runSingle(rootArg, proofArg, assertArg string) error {
	if rootArg == "" || proofArg == "" {
		return fmt.Errorf("smtverify: -root and -proof are required without -bundle")
	}

	root, err := decodeValue(rootArg)
	if err != nil {
		return fmt.Errorf("smtverify: parsing -root: %w", err)
	}
	proof, err := hex.DecodeString(proofArg)
	if err != nil {
		return fmt.Errorf("smtverify: parsing -proof: %w", err)
	}

	assertions, err := parseAssertions(assertArg)
	if err != nil {
		return fmt.Errorf("smtverify: parsing -assert: %w", err)
	}

	state, err := buildState(assertions)
	if err != nil {
		return fmt.Errorf("smtverify: building state: %w", err)
	}

	if glog.V(1) {
		glog.Infof("smtverify: verifying %d assertions against root %x", state.Len(), root)
	}

	if err := smt.Verify(root, state, proof); err != nil {
		return fmt.Errorf("smtverify: verification failed: %w", err)
	}
	fmt.Println("OK")
	return nil
}

func runBundle(path string, parallelism int) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("smtverify: reading bundle: %w", err)
	}

	var bf bundleFile
	if err := yaml.Unmarshal(data, &bf); err != nil {
		return fmt.Errorf("smtverify: parsing bundle: %w", err)
	}

	jobs := make([]smt.VerifyJob, 0, len(bf.Cases))
	for _, c := range bf.Cases {
		root, err := decodeValue(c.Root)
		if err != nil {
			return fmt.Errorf("smtverify: case %q: bad root: %w", c.Name, err)
		}
		proof, err := hex.DecodeString(c.Proof)
		if err != nil {
			return fmt.Errorf("smtverify: case %q: bad proof: %w", c.Name, err)
		}
		state, err := buildState(c.Assertions)
		if err != nil {
			return fmt.Errorf("smtverify: case %q: bad assertions: %w", c.Name, err)
		}
		jobs = append(jobs, smt.VerifyJob{Root: root, State: state, Proof: proof})
	}

	results, err := smt.VerifyBatch(context.Background(), jobs, parallelism)
	if err != nil {
		return fmt.Errorf("smtverify: batch canceled: %w", err)
	}

	failed := 0
	for i, c := range bf.Cases {
		got := results[i]
		gotInvalid := got != nil
		status := "PASS"
		if gotInvalid != c.WantInvalid {
			status = "FAIL"
			failed++
		}
		fmt.Printf("%s  %-24s  err=%v\n", status, c.Name, got)
	}
	if failed > 0 {
		return fmt.Errorf("smtverify: %d of %d cases did not match expectation", failed, len(bf.Cases))
	}
	return nil
}

func parseAssertions(s string) (map[string]string, error) {
	out := map[string]string{}
	if s == "" {
		return out, nil
	}
	pairs := splitNonEmpty(s, ',')
	for _, p := range pairs {
		kv := splitNonEmpty(p, ':')
		if len(kv) != 2 {
			return nil, fmt.Errorf("malformed key:value pair %q", p)
		}
		out[kv[0]] = kv[1]
	}
	return out, nil
}

func splitNonEmpty(s string, sep byte) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == sep {
			if i > start {
				out = append(out, s[start:i])
			}
			start = i + 1
		}
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}

func buildState(assertions map[string]string) (*smt.State, error) {
	state := smt.NewState(len(assertions))
	for k, v := range assertions {
		key, err := decodeValue(k)
		if err != nil {
			return nil, fmt.Errorf("bad key %q: %w", k, err)
		}
		val, err := decodeValue(v)
		if err != nil {
			return nil, fmt.Errorf("bad value %q: %w", v, err)
		}
		if err := state.Insert(smt.Key(key), val); err != nil {
			return nil, err
		}
	}
	state.Normalize()
	return state, nil
}

func decodeValue(s string) (smt.Value, error) {
	var v smt.Value
	b, err := hex.DecodeString(s)
	if err != nil {
		return v, err
	}
	if len(b) != smt.KeyBytes {
		return v, fmt.Errorf("want %d bytes, got %d", smt.KeyBytes, len(b))
	}
	copy(v[:], b)
	return v, nil
}
