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

package main

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ocelle/huffpack/codec"
)

func printCompressionStats(res *codec.EncodeResult, inputSize int, elapsed time.Duration) {
	ratio := 0.0

	if inputSize > 0 {
		ratio = 100.0 * (1.0 - float64(len(res.Data))/float64(inputSize))
	}

	log.WithFields(logrus.Fields{
		"input_kb":      kb(inputSize),
		"compressed_kb": kb(len(res.Data)),
		"ratio_pct":     ratio,
		"tree_nodes":    res.NodeCount,
		"max_depth":     res.MaxDepth,
		"elapsed":       elapsed.Round(time.Millisecond).String(),
	}).Info("compression stats")
}

func printDecompressionStats(compressedSize, outputSize int, elapsed time.Duration) {
	log.WithFields(logrus.Fields{
		"compressed_kb": kb(compressedSize),
		"output_kb":     kb(outputSize),
		"elapsed":       elapsed.Round(time.Millisecond).String(),
	}).Info("decompression stats")
}

func kb(size int) float64 {
	return float64(size) / 1024.0
}
