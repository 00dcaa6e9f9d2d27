// Package wavrate rewrites the sample-rate field of a WAV file while leaving
// the encoded sample payload byte-identical. The result plays the same
// material at a shifted tempo and pitch, the way speeding up a record or a
// tape does: going from 48000 Hz to 50400 Hz raises both by 5%.
//
// The pipeline is parse, rewrite, serialize:
//
//   - Decoder reads a RIFF/WAVE stream into Params plus the raw frame bytes.
//   - Params.WithSampleRate substitutes the playback rate and nothing else.
//   - Encoder writes a canonical fmt+data container with the frame bytes
//     copied verbatim.
//
// Chunks other than "fmt " and "data" are skipped on read and never
// re-emitted. Bytes of the fmt chunk beyond the canonical 16 are preserved
// verbatim. No resampling or sample interpretation happens on the rewrite
// path.
package wavrate
