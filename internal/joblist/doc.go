// Package joblist reads job payloads from user input files: a batch file
// with one command per line, or a script file whose lines become a single
// job's body. It owns the shell-splitting of batch lines into argument
// vectors; graph construction and validation live in the chain package.
package joblist
