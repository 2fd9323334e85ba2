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

import "fmt"

// Instruction is one decoded bytecode step. Operand holds the raw operand
// bytes (empty for L and H, which take none).
type Instruction struct {
	Opcode  byte
	Name    string
	Operand []byte
}

func (in Instruction) String() string {
	if len(in.Operand) == 0 {
		return in.Name
	}
	return fmt.Sprintf("%s %x", in.Name, in.Operand)
}

// Disassemble decodes proof into its instruction sequence without touching
// any KV state or stack. It shares the VM's truncation and unknown-opcode
// checks, so a proof that disassembles cleanly will not be rejected by the
// VM for malformed bytecode, only (possibly) for stack or height
// violations, which require the stack this function deliberately doesn't
// model. This is a diagnostics aid, not a proof computer.
func Disassemble(proof []byte) ([]Instruction, error) {
	var out []Instruction
	idx := 0
	for idx < len(proof) {
		op := proof[idx]
		idx++
		switch op {
		case opPushLeaf:
			out = append(out, Instruction{Opcode: op, Name: "L"})
		case opProofSibling:
			if idx+KeyBytes > len(proof) {
				return nil, newError(InvalidProof, "truncated proof sibling operand")
			}
			out = append(out, Instruction{Opcode: op, Name: "P", Operand: append([]byte(nil), proof[idx:idx+KeyBytes]...)})
			idx += KeyBytes
		case opCompressedSibling:
			const operandLen = 1 + KeyBytes + KeyBytes
			if idx+operandLen > len(proof) {
				return nil, newError(InvalidProof, "truncated compressed sibling operand")
			}
			out = append(out, Instruction{Opcode: op, Name: "C", Operand: append([]byte(nil), proof[idx:idx+operandLen]...)})
			idx += operandLen
		case opMergeTop:
			out = append(out, Instruction{Opcode: op, Name: "H"})
		case opZeroRun:
			if idx >= len(proof) {
				return nil, newError(InvalidProof, "truncated zero-run operand")
			}
			out = append(out, Instruction{Opcode: op, Name: "O", Operand: []byte{proof[idx]}})
			idx++
		default:
			return nil, newError(InvalidProof, "unknown opcode 0x%02x", op)
		}
	}
	return out, nil
}
