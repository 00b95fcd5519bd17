package checkout

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"agencylms/internal/utils"
	"agencylms/internal/validation"
)

// Notifier shows alert level messages, as opposed to inline field errors.
type Notifier interface {
	Alert(msg string)
}

type NotifierFunc func(msg string)

func (f NotifierFunc) Alert(msg string) { f(msg) }

// Enroller is the network side of Submit.
type Enroller interface {
	Enroll(ctx context.Context, form FormData) (Result, error)
}

type Option func(*Flow)

func WithNotifier(n Notifier) Option     { return func(f *Flow) { f.notifier = n } }
func WithPreviews(p PreviewStore) Option { return func(f *Flow) { f.previews = p } }

// Flow holds one learner's checkout. Methods are safe for concurrent use; the
// in-flight guard on Submit is advisory only.
type Flow struct {
	mu       sync.Mutex
	state    State
	enroller Enroller
	notifier Notifier
	previews PreviewStore
	closed   bool
}

func New(course Course, enroller Enroller, opts ...Option) *Flow {
	f := &Flow{
		state: State{
			CurrentStep: StepPersonal,
			Errors:      validation.Errors{},
			FormData: FormData{
				CourseID:    course.ID,
				CourseName:  course.Name,
				CoursePrice: course.Price,
				Instructor:  course.Instructor,
			},
		},
		enroller: enroller,
	}
	for _, o := range opts {
		o(f)
	}
	if f.previews == nil {
		f.previews = NewMemoryPreviews()
	}
	return f
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := f.state
	s.Errors = copyErrors(f.state.Errors)
	return s
}

// SetField edits one text field and clears its error.
func (f *Flow) SetField(name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	d := &f.state.FormData
	switch name {
	case validation.FieldFullName:
		d.FullName = value
	case validation.FieldEmail:
		d.Email = value
	case validation.FieldPhone:
		d.Phone = value
	case validation.FieldAddress:
		d.Address = value
	case validation.FieldCity:
		d.City = value
	case validation.FieldState:
		d.State = value
	case validation.FieldPincode:
		d.Pincode = value
	case validation.FieldPaymentMethod:
		d.PaymentMethod = value
	case validation.FieldTransactionID:
		d.TransactionID = value
	default:
		return fmt.Errorf("checkout: unknown field %q", name)
	}
	delete(f.state.Errors, name)
	return nil
}

// ValidateStep records and returns the field errors for a step.
func (f *Flow) ValidateStep(step Step) validation.Errors {
	f.mu.Lock()
	defer f.mu.Unlock()
	errs := f.validateLocked(step)
	return copyErrors(errs)
}

func (f *Flow) validateLocked(step Step) validation.Errors {
	var errs validation.Errors
	switch step {
	case StepPersonal:
		errs = validation.ValidatePersonal(f.state.FormData.personal())
	case StepPayment:
		errs = validation.ValidatePayment(f.state.FormData.payment())
	default:
		errs = validation.Errors{}
	}
	f.state.Errors = errs
	return errs
}

// Next moves to the payment step when the personal details are valid.
func (f *Flow) Next() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state.CurrentStep != StepPersonal {
		return false
	}
	if !f.validateLocked(StepPersonal).Empty() {
		return false
	}
	f.state.CurrentStep = StepPayment
	return true
}

func (f *Flow) Back() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state.CurrentStep == StepPayment && !f.state.Loading {
		f.state.CurrentStep = StepPersonal
		f.state.Errors = validation.Errors{}
	}
}

// HandleFileUpload accepts an image up to 5MB. A rejected file leaves the previous
// one in place.
func (f *Flow) HandleFileUpload(file *File) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if file == nil {
		return false
	}
	size := file.Size
	if size == 0 {
		size = int64(len(file.Data))
	}
	if msg := validation.CheckScreenshot(file.ContentType, size); msg != "" {
		f.state.Errors[validation.FieldPaymentScreenshot] = msg
		return false
	}
	if f.state.Preview != "" {
		f.previews.Revoke(f.state.Preview)
	}
	file.Size = size
	f.state.FormData.PaymentScreenshot = file
	f.state.Preview = f.previews.Create(file)
	delete(f.state.Errors, validation.FieldPaymentScreenshot)
	return true
}

// Submit validates both steps and posts the form once. Failures surface as a
// single alert and leave the form as it was.
func (f *Flow) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.closed || f.state.ShowThankYou {
		f.mu.Unlock()
		return ErrClosed
	}
	if f.state.Loading {
		f.mu.Unlock()
		return ErrSubmitInFlight
	}
	errs := f.validateLocked(StepPersonal)
	if !errs.Empty() {
		f.state.CurrentStep = StepPersonal
		f.mu.Unlock()
		return ErrInvalid
	}
	if !f.validateLocked(StepPayment).Empty() {
		f.mu.Unlock()
		return ErrInvalid
	}
	if f.enroller == nil {
		f.mu.Unlock()
		return errNoEndpoint
	}
	form := f.state.FormData
	f.state.Loading = true
	f.state.Alert = ""
	f.mu.Unlock()

	_, err := f.enroller.Enroll(ctx, form)

	f.mu.Lock()
	f.state.Loading = false
	if err != nil {
		msg := FailureMessage(err)
		f.state.Alert = msg
		n := f.notifier
		f.mu.Unlock()
		if n != nil {
			n.Alert(msg)
		}
		return err
	}
	f.state.ShowThankYou = true
	f.releasePreviewLocked()
	f.mu.Unlock()
	return nil
}

// Close releases the preview handle.
func (f *Flow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	f.releasePreviewLocked()
}

func (f *Flow) releasePreviewLocked() {
	if f.state.Preview != "" {
		f.previews.Revoke(f.state.Preview)
		f.state.Preview = ""
	}
}

// Summary is the order line shown next to the payment step.
func (s State) Summary() string {
	d := s.FormData
	parts := []string{d.CourseName}
	if d.Instructor != "" {
		parts = append(parts, "by "+d.Instructor)
	}
	parts = append(parts, "-", utils.FormatINR(d.CoursePrice))
	return strings.Join(parts, " ")
}
