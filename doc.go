// Package inflation (katalvlaran/inflation) turns causal-compatibility
// questions into sparse LP/SDP programs via the inflation technique.
//
// 🚀 What is inflation?
//
//	Given a causal DAG with unobserved common causes and an observed
//	joint distribution, inflation duplicates each latent source k times
//	and asks whether a symmetric extension of the distribution exists on
//	the inflated graph. The answer is certified by a linear or
//	semidefinite program; the hierarchy converges as k grows.
//
// ✨ What lives here?
//
//   - scenario/  — the immutable inflated-scenario description
//   - ops/       — operator alphabet, lex order, commutation matrix
//   - canon/     — rewrite engine producing canonical operator strings
//   - factor/    — causal factorization into atomic components
//   - symmetry/  — source-copy relabeling group and orbit representatives
//   - monomial/  — interning registry with stable integer ids
//   - genset/    — generating-set construction (npaN, localN, physicalN, …)
//   - moment/    — moment-matrix builder with exact symmetry quotient
//   - lpcons/    — sparse normalization / Collins–Gisin / LPI constraints
//   - valuation/ — numeric binding of atoms, bounds, objective processing
//   - program/   — SDP and LP engines behind one capability interface
//
// The algorithmic core works exclusively with dense integer ids; all
// symbolic naming is confined to the monomial name codec. Two runs on
// the same scenario and generator specification produce byte-identical
// programs.
//
//	go get github.com/katalvlaran/inflation
package inflation
