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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validJob(leafByte byte) VerifyJob {
	var key Key
	var value Value
	value[0] = leafByte
	s := NewState(1)
	_ = s.Insert(key, value)
	s.Normalize()
	proof := []byte{opPushLeaf, opZeroRun, 0x00}
	root, _ := CalculateRoot(s, proof)
	return VerifyJob{Root: root, State: s, Proof: proof}
}

func TestVerifyBatchAllSucceed(t *testing.T) {
	jobs := []VerifyJob{validJob(1), validJob(2), validJob(3)}
	results, err := VerifyBatch(context.Background(), jobs, 2)
	require.NoError(t, err)
	require.Len(t, results, 3)
	for _, r := range results {
		assert.NoError(t, r)
	}
}

func TestVerifyBatchReportsPerJobFailure(t *testing.T) {
	good := validJob(1)
	bad := validJob(2)
	bad.Root[0] ^= 0xFF // corrupt only this job's claimed root

	jobs := []VerifyJob{good, bad}
	results, err := VerifyBatch(context.Background(), jobs, 0)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.NoError(t, results[0])
	assert.Error(t, results[1])
}

func TestVerifyBatchPreservesJobOrder(t *testing.T) {
	jobs := make([]VerifyJob, 20)
	for i := range jobs {
		jobs[i] = validJob(byte(i + 1))
		if i%3 == 0 {
			jobs[i].Root[0] ^= 0xFF // every third job must fail, in place
		}
	}
	results, err := VerifyBatch(context.Background(), jobs, 4)
	require.NoError(t, err)
	require.Len(t, results, len(jobs))
	for i, r := range results {
		if i%3 == 0 {
			assert.Errorf(t, r, "job %d", i)
		} else {
			assert.NoErrorf(t, r, "job %d", i)
		}
	}
}

func TestVerifyBatchHonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	jobs := []VerifyJob{validJob(1)}
	_, err := VerifyBatch(ctx, jobs, 1)
	assert.Error(t, err)
}

func TestVerifyBatchCompletesUnderDeadline(t *testing.T) {
	jobs := make([]VerifyJob, 8)
	for i := range jobs {
		jobs[i] = validJob(byte(i + 1))
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	results, err := VerifyBatch(ctx, jobs, 4)
	require.NoError(t, err)
	assert.Len(t, results, len(jobs))
}
