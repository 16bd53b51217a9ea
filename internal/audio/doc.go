// Package audio turns media files into the cepstral feature matrices the
// speech classifier consumes. It shells out to ffmpeg for a bounded mono
// transcode, decodes the temporary WAV, and computes MFCCs with a mel
// filterbank and DCT over short-time spectra.
package audio
