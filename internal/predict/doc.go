// Package predict loads the pretrained speech activity classifier and
// runs it over cepstral feature matrices through ONNX Runtime.
package predict
