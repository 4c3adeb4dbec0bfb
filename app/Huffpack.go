/*
Copyright 2019-2026 the huffpack authors
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// The huffpack command is a thin interactive shell around the codec
// package: it prompts for file paths, moves bytes in and out of files
// and prints statistics. All the compression logic lives in the codec.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/sirupsen/logrus"

	huffpack "github.com/ocelle/huffpack"
	"github.com/ocelle/huffpack/codec"
)

const (
	_HUFFPACK_VERSION = "1.1"
	_APP_HEADER       = "huffpack " + _HUFFPACK_VERSION
)

var log = logrus.New()

func main() {
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	if len(os.Args) > 1 && (os.Args[1] == "-v" || os.Args[1] == "--verbose") {
		log.SetLevel(logrus.DebugLevel)
	}

	os.Exit(run(bufio.NewScanner(os.Stdin)))
}

func run(stdin *bufio.Scanner) int {
	fmt.Printf("=== %s ===\n", _APP_HEADER)

	for {
		fmt.Println("1. Compress a file")
		fmt.Println("2. Decompress a file")
		fmt.Println("3. Exit")
		fmt.Print("Enter your choice (1-3): ")

		choice, ok := readLine(stdin)

		if !ok {
			return 0
		}

		switch choice {
		case "1":
			inputName, outputName, ok := promptPaths(stdin, "input file name", "output compressed file name")

			if !ok {
				return 0
			}

			if status := compressFile(inputName, outputName); status != 0 {
				return status
			}

		case "2":
			inputName, outputName, ok := promptPaths(stdin, "compressed file name", "output decompressed file name")

			if !ok {
				return 0
			}

			if status := decompressFile(inputName, outputName); status != 0 {
				return status
			}

		case "3":
			fmt.Println("Goodbye!")
			return 0

		default:
			fmt.Println("Invalid choice!")
		}
	}
}

func readLine(stdin *bufio.Scanner) (string, bool) {
	if !stdin.Scan() {
		return "", false
	}

	return strings.TrimSpace(stdin.Text()), true
}

func promptPaths(stdin *bufio.Scanner, inLabel, outLabel string) (string, string, bool) {
	fmt.Printf("Enter %s: ", inLabel)
	inputName, ok := readLine(stdin)

	if !ok || inputName == "" {
		return "", "", false
	}

	fmt.Printf("Enter %s: ", outLabel)
	outputName, ok := readLine(stdin)

	if !ok || outputName == "" {
		return "", "", false
	}

	return inputName, outputName, true
}

func compressFile(inputName, outputName string) int {
	data, err := os.ReadFile(inputName)

	if err != nil {
		log.Errorf("Cannot open input file '%s': %v", inputName, err)
		return huffpack.ERR_OPEN_FILE
	}

	before := time.Now()
	res, err := codec.Encode(data)

	if err != nil {
		return reportCodecError("Compression", err)
	}

	elapsed := time.Since(before)

	if err := os.WriteFile(outputName, res.Data, 0644); err != nil {
		log.Errorf("Cannot write output file '%s': %v", outputName, err)
		return huffpack.ERR_WRITE_FILE
	}

	// Decode the artifact in memory and compare digests: a mismatch here
	// means the artifact on disk is unusable.
	decoded, err := codec.Decompress(res.Data)

	if err != nil {
		return reportCodecError("Verification", err)
	}

	if xxhash.Sum64(data) != xxhash.Sum64(decoded) {
		log.Errorf("Verification failed: round trip digest mismatch for '%s'", outputName)
		return huffpack.ERR_UNKNOWN
	}

	log.Debugf("Round trip verified (xxh64 %016x)", xxhash.Sum64(data))
	printCompressionStats(res, len(data), elapsed)
	fmt.Println("Compression completed!")
	return 0
}

func decompressFile(inputName, outputName string) int {
	data, err := os.ReadFile(inputName)

	if err != nil {
		log.Errorf("Cannot open input file '%s': %v", inputName, err)
		return huffpack.ERR_OPEN_FILE
	}

	before := time.Now()
	decoded, err := codec.Decompress(data)

	if err != nil {
		return reportCodecError("Decompression", err)
	}

	elapsed := time.Since(before)

	if err := os.WriteFile(outputName, decoded, 0644); err != nil {
		log.Errorf("Cannot write output file '%s': %v", outputName, err)
		return huffpack.ERR_WRITE_FILE
	}

	printDecompressionStats(len(data), len(decoded), elapsed)
	fmt.Println("Decompression completed!")
	return 0
}

func reportCodecError(stage string, err error) int {
	if ce, ok := err.(*huffpack.CodecError); ok {
		log.Errorf("%s failed: %s", stage, ce.Message())
		return ce.ErrorCode()
	}

	log.Errorf("%s failed: %v", stage, err)
	return huffpack.ERR_UNKNOWN
}
