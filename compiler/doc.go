/*

Pipeline

Program Text ->
	parse ->
Abstract Syntax Tree (ast) ->
	interp ->
Simulated Quantum Device (qsim)

Program Text ->
	parse ->
Abstract Syntax Tree (ast) ->
	format ->
Canonical Program Text

*/
package compiler
