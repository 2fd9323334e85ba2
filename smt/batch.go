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

package smt

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// VerifyJob is one independent verification request for VerifyBatch.
type VerifyJob struct {
	Root  Value
	State *State
	Proof []byte
}

// VerifyBatch runs each job's Verify concurrently, bounded to parallelism
// workers (0 or negative means unbounded, left to errgroup/the runtime).
// Every job gets its own VM, so no mutable state is shared across
// goroutines. This exploits the core's documented reentrancy; it does not
// change the synchronous single-call contract.
//
// The returned slice has one entry per job, in job order, holding that
// job's Verify error (nil on success). The second return value is non-nil
// only if ctx is canceled before all jobs complete.
func VerifyBatch(ctx context.Context, jobs []VerifyJob, parallelism int) ([]error, error) {
	results := make([]error, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	if parallelism > 0 {
		g.SetLimit(parallelism)
	}

	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = NewVM().Verify(job.Root, job.State, job.Proof)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
