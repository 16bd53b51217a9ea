package predict

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"sublign/internal/audio"
	"sublign/internal/services"
)

var (
	runtimeInit sync.Once
	runtimeErr  error
)

// ensureRuntime initializes the ONNX Runtime environment once per
// process. The environment stays up until exit because sessions loaded
// later share it.
func ensureRuntime(libraryPath string) error {
	runtimeInit.Do(func() {
		if libraryPath != "" {
			ort.SetSharedLibraryPath(libraryPath)
		}
		runtimeErr = ort.InitializeEnvironment()
	})
	return runtimeErr
}

// Model is a pretrained frame-level speech classifier loaded through ONNX
// Runtime. The network consumes one (frames, coefficients, 1) tensor and
// emits a sigmoid speech probability per frame.
type Model struct {
	path       string
	inputName  string
	outputName string
	session    *ort.DynamicAdvancedSession
}

// LoadModel opens the classifier at modelPath. libraryPath optionally
// points at the ONNX Runtime shared library when it is not on the loader
// path.
func LoadModel(modelPath, libraryPath string) (*Model, error) {
	if modelPath == "" {
		return nil, services.Wrap(services.ErrConfiguration, "predict", "load",
			"no model path configured", nil)
	}
	if _, err := os.Stat(modelPath); err != nil {
		return nil, services.Wrap(services.ErrNotFound, "predict", "load",
			fmt.Sprintf("model %s", modelPath), err)
	}
	if err := ensureRuntime(libraryPath); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "predict", "load",
			"initialize onnx runtime", err)
	}

	inputs, outputs, err := ort.GetInputOutputInfo(modelPath)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "predict", "load",
			"read model metadata", err)
	}
	if len(inputs) != 1 || len(outputs) == 0 {
		return nil, services.Wrap(services.ErrPrecondition, "predict", "load",
			fmt.Sprintf("expected a single-input model, found %d inputs and %d outputs", len(inputs), len(outputs)), nil)
	}

	session, err := ort.NewDynamicAdvancedSession(modelPath,
		[]string{inputs[0].Name}, []string{outputs[0].Name}, nil)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "predict", "load",
			"create inference session", err)
	}
	return &Model{
		path:       modelPath,
		inputName:  inputs[0].Name,
		outputName: outputs[0].Name,
		session:    session,
	}, nil
}

// Predict runs the classifier over every frame of the feature matrix.
func (m *Model) Predict(ctx context.Context, features *audio.FeatureMatrix) ([]float64, error) {
	if features == nil || features.Frames() == 0 {
		return nil, services.Wrap(services.ErrPrecondition, "predict", "predict",
			"no features to classify", nil)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.session == nil {
		return nil, services.Wrap(services.ErrPrecondition, "predict", "predict",
			"model not loaded", nil)
	}

	frames := int64(features.Frames())
	coefficients := int64(features.Coefficients())
	input, err := ort.NewTensor(ort.NewShape(frames, coefficients, 1), features.FrameMajor())
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "predict", "predict",
			"create input tensor", err)
	}
	defer input.Destroy()

	outputs := make([]ort.Value, 1)
	if err := m.session.Run([]ort.Value{input}, outputs); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "predict", "predict",
			"inference failed", err)
	}
	defer outputs[0].Destroy()

	tensor, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, services.Wrap(services.ErrExternalTool, "predict", "predict",
			"model emitted a non-float32 output", nil)
	}
	data := tensor.GetData()
	if int64(len(data)) != frames {
		return nil, services.Wrap(services.ErrExternalTool, "predict", "predict",
			fmt.Sprintf("model emitted %d values for %d frames", len(data), frames), nil)
	}

	probabilities := make([]float64, frames)
	for i, v := range data {
		probabilities[i] = float64(v)
	}
	return probabilities, nil
}

// Describe names the loaded model file.
func (m *Model) Describe() string {
	if m == nil || m.path == "" {
		return ""
	}
	return filepath.Base(m.path)
}

// Close releases the inference session. The shared runtime environment
// stays up for the rest of the process.
func (m *Model) Close() error {
	if m != nil && m.session != nil {
		m.session.Destroy()
		m.session = nil
	}
	return nil
}
