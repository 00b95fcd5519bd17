// Command checkout submits an enrollment request from the terminal using the same
// two step flow and wire format as the web checkout.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"time"

	"agencylms/internal/checkout"
	"agencylms/internal/utils"
	"agencylms/internal/validation"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"
)

type config struct {
	Endpoint string        `env:"CHECKOUT_ENDPOINT" env-default:"http://localhost:8080/enroll-request"`
	Token    string        `env:"CHECKOUT_TOKEN"`
	Timeout  time.Duration `env:"CHECKOUT_TIMEOUT" env-default:"30s"`
	LogLevel string        `env:"LOG_LEVEL" env-default:"warn"`
}

func main() {
	os.Exit(run())
}

func run() int {
	var cfg config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		return 2
	}

	var (
		courseID   = flag.Int64("course-id", 0, "course id")
		courseName = flag.String("course", "", "course name shown in the summary")
		price      = flag.Float64("price", 0, "course price in INR")
		instructor = flag.String("instructor", "", "course instructor")
		screenshot = flag.String("screenshot", "", "path to the payment screenshot")
	)
	fields := map[string]*string{}
	for _, f := range []struct{ name, usage string }{
		{validation.FieldFullName, "full name"},
		{validation.FieldEmail, "email address"},
		{validation.FieldPhone, "10 digit phone number"},
		{validation.FieldAddress, "street address"},
		{validation.FieldCity, "city"},
		{validation.FieldState, "state"},
		{validation.FieldPincode, "6 digit pincode"},
		{validation.FieldPaymentMethod, "payment method (upi or bank)"},
		{validation.FieldTransactionID, "payment transaction id"},
	} {
		fields[f.name] = flag.String(f.name, "", f.usage)
	}
	flag.Parse()

	logger, err := utils.NewLogger(cfg.LogLevel, false)
	if err == nil {
		utils.SetLogger(logger)
		defer func() { _ = logger.Sync() }()
	}

	client := checkout.NewClient(cfg.Endpoint, checkout.StaticToken(cfg.Token))
	client.HTTP.Timeout = cfg.Timeout

	flow := checkout.New(checkout.Course{
		ID:         *courseID,
		Name:       *courseName,
		Price:      *price,
		Instructor: *instructor,
	}, client, checkout.WithNotifier(checkout.NotifierFunc(func(msg string) {
		fmt.Fprintln(os.Stderr, msg)
	})))
	defer flow.Close()

	for name, v := range fields {
		if err := flow.SetField(name, *v); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
	}

	if !flow.Next() {
		printErrors("Personal details", flow.State().Errors)
		return 1
	}

	if *screenshot != "" {
		file, err := readScreenshot(*screenshot)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if !flow.HandleFileUpload(file) {
			printErrors("Payment", flow.State().Errors)
			return 1
		}
	}

	fmt.Println(flow.State().Summary())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := flow.Submit(ctx); err != nil {
		if errors.Is(err, checkout.ErrInvalid) {
			printErrors("Payment", flow.State().Errors)
			return 1
		}
		utils.L().Debug("enrollment submit failed", zap.Error(err))
		return 1
	}

	fmt.Printf("Thank you, %s! Your enrollment request has been received.\n", flow.State().FormData.FullName)
	return 0
}

func readScreenshot(path string) (*checkout.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read screenshot: %w", err)
	}
	ct, _ := validation.SniffImage(data)
	return &checkout.File{
		Name:        filepath.Base(path),
		ContentType: ct,
		Size:        int64(len(data)),
		Data:        data,
	}, nil
}

func printErrors(step string, errs validation.Errors) {
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Fprintf(os.Stderr, "%s has errors:\n", step)
	for _, k := range keys {
		fmt.Fprintf(os.Stderr, "  %s: %s\n", k, errs[k])
	}
}
