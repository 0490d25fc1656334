package client

import (
	"errors"
	"strconv"

	"parfumnotebook-backend/utils"
)

// ItemRow keeps quantity and price as the typed display strings, empty when
// not filled in yet; they become numbers only at save time.
type ItemRow struct {
	PositionNo    int
	Volume        string
	Bottle        string
	Color         string
	Quantity      string
	Price         string
	Remark        string
	CarryFromPrev bool
}

type TaskRow struct {
	Text string
	Done bool
}

type TesterRow struct {
	Text     string
	Quantity string
}

// FormState is one day's editable draft. Changing the date replaces the whole
// draft with whatever the server has for it (or empty defaults); Save submits
// the complete draft and adopts the returned report id.
type FormState struct {
	api     *Client
	sellers SellerStore

	ReportID uint
	Date     string

	Department     string
	Seller         string
	PrevDayBalance string
	Cashless       string
	Remaining      string
	SafeCashless   string
	SafeTerminal   string

	Items       []ItemRow
	Tasks       []TaskRow
	TesterItems []TesterRow
}

var ErrIndexOutOfRange = errors.New("row index out of range")

// NewFormState starts a draft for today. The remembered seller name is read
// once here and offered until a loaded report overrides it.
func NewFormState(api *Client, sellers SellerStore) *FormState {
	f := &FormState{api: api, sellers: sellers}
	if sellers != nil {
		if name, err := sellers.Load(); err == nil && name != "" {
			f.Seller = name
		}
	}
	f.SetDate(utils.Today())
	return f
}

// SetDate switches the draft to another day, loading that day's report. Not
// found and transport failures both degrade to an empty draft; the seller
// name survives as the fallback.
func (f *FormState) SetDate(date string) {
	f.Date = date

	agg, err := f.api.LoadReport(date)
	if err != nil {
		f.clear()
		return
	}

	f.ReportID = agg.Report.ID
	f.Department = agg.Report.Department
	f.PrevDayBalance = amountToDisplay(agg.Report.PrevDayBalance)
	f.Cashless = amountToDisplay(agg.Report.Cashless)
	f.Remaining = amountToDisplay(agg.Report.Remaining)
	f.SafeCashless = amountToDisplay(agg.Report.SafeCashless)
	f.SafeTerminal = amountToDisplay(agg.Report.SafeTerminal)

	if agg.Report.Seller != "" {
		f.Seller = agg.Report.Seller
	}

	f.Items = f.Items[:0]
	for _, it := range agg.Items {
		f.Items = append(f.Items, ItemRow{
			PositionNo:    it.PositionNo,
			Volume:        it.Volume,
			Bottle:        it.Bottle,
			Color:         it.Color,
			Quantity:      amountToDisplay(it.Quantity),
			Price:         amountToDisplay(it.Price),
			Remark:        it.Remark,
			CarryFromPrev: it.CarryFromPrev,
		})
	}

	f.Tasks = f.Tasks[:0]
	for _, t := range agg.Tasks {
		f.Tasks = append(f.Tasks, TaskRow{Text: t.Text, Done: t.Done})
	}

	f.TesterItems = f.TesterItems[:0]
	for _, t := range agg.TesterWriteOffItems {
		f.TesterItems = append(f.TesterItems, TesterRow{Text: t.Text, Quantity: amountToDisplay(t.Quantity)})
	}
}

// SetSeller updates the seller field and remembers the name for future days
func (f *FormState) SetSeller(name string) {
	f.Seller = name
	if name != "" && f.sellers != nil {
		f.sellers.Save(name)
	}
}

// clear resets everything except the date and the remembered seller
func (f *FormState) clear() {
	f.ReportID = 0
	f.Department = ""
	f.PrevDayBalance = ""
	f.Cashless = ""
	f.Remaining = ""
	f.SafeCashless = ""
	f.SafeTerminal = ""
	f.Items = nil
	f.Tasks = nil
	f.TesterItems = nil
}

func (f *FormState) AddItem() {
	f.Items = append(f.Items, ItemRow{PositionNo: len(f.Items) + 1})
}

func (f *FormState) UpdateItem(idx int, update func(*ItemRow)) error {
	if idx < 0 || idx >= len(f.Items) {
		return ErrIndexOutOfRange
	}
	update(&f.Items[idx])
	return nil
}

// RemoveItem drops the row and renumbers the rest to a contiguous 1..N
// sequence, preserving relative order.
func (f *FormState) RemoveItem(idx int) error {
	if idx < 0 || idx >= len(f.Items) {
		return ErrIndexOutOfRange
	}
	f.Items = append(f.Items[:idx], f.Items[idx+1:]...)
	for i := range f.Items {
		f.Items[i].PositionNo = i + 1
	}
	return nil
}

func (f *FormState) AddTask() {
	f.Tasks = append(f.Tasks, TaskRow{})
}

func (f *FormState) UpdateTask(idx int, update func(*TaskRow)) error {
	if idx < 0 || idx >= len(f.Tasks) {
		return ErrIndexOutOfRange
	}
	update(&f.Tasks[idx])
	return nil
}

func (f *FormState) RemoveTask(idx int) error {
	if idx < 0 || idx >= len(f.Tasks) {
		return ErrIndexOutOfRange
	}
	f.Tasks = append(f.Tasks[:idx], f.Tasks[idx+1:]...)
	return nil
}

func (f *FormState) AddTesterItem() {
	f.TesterItems = append(f.TesterItems, TesterRow{})
}

func (f *FormState) UpdateTesterItem(idx int, update func(*TesterRow)) error {
	if idx < 0 || idx >= len(f.TesterItems) {
		return ErrIndexOutOfRange
	}
	update(&f.TesterItems[idx])
	return nil
}

func (f *FormState) RemoveTesterItem(idx int) error {
	if idx < 0 || idx >= len(f.TesterItems) {
		return ErrIndexOutOfRange
	}
	f.TesterItems = append(f.TesterItems[:idx], f.TesterItems[idx+1:]...)
	return nil
}

// Total is the on-screen grand total: the sum of item prices. The CSV export
// total sums quantity*price instead; the two have always differed and are
// kept apart deliberately.
func (f *FormState) Total() float64 {
	var total float64
	for _, it := range f.Items {
		total += displayToAmount(it.Price)
	}
	return total
}

// TesterTotal is the on-screen tester quantity sum; it is not exported
func (f *FormState) TesterTotal() float64 {
	var total float64
	for _, t := range f.TesterItems {
		total += displayToAmount(t.Quantity)
	}
	return total
}

// Save submits the whole draft and adopts the server-assigned report id
func (f *FormState) Save() error {
	payload := SavePayload{
		Date:                f.Date,
		Department:          f.Department,
		Seller:              f.Seller,
		PrevDayBalance:      displayToAmount(f.PrevDayBalance),
		Cashless:            displayToAmount(f.Cashless),
		Remaining:           displayToAmount(f.Remaining),
		SafeCashless:        displayToAmount(f.SafeCashless),
		SafeTerminal:        displayToAmount(f.SafeTerminal),
		Items:               []ItemPayload{},
		Tasks:               []TaskPayload{},
		TesterWriteOffItems: []TesterPayload{},
	}

	for _, it := range f.Items {
		payload.Items = append(payload.Items, ItemPayload{
			PositionNo:    it.PositionNo,
			Volume:        it.Volume,
			Bottle:        it.Bottle,
			Color:         it.Color,
			Quantity:      displayToAmount(it.Quantity),
			Price:         displayToAmount(it.Price),
			Remark:        it.Remark,
			CarryFromPrev: it.CarryFromPrev,
		})
	}
	for _, t := range f.Tasks {
		payload.Tasks = append(payload.Tasks, TaskPayload{Text: t.Text, Done: t.Done})
	}
	for _, t := range f.TesterItems {
		payload.TesterWriteOffItems = append(payload.TesterWriteOffItems, TesterPayload{
			Text:     t.Text,
			Quantity: displayToAmount(t.Quantity),
		})
	}

	report, err := f.api.SaveReport(payload)
	if err != nil {
		return err
	}
	f.ReportID = report.ID
	return nil
}

// amountToDisplay renders a stored number for an input field; zero shows as
// empty, matching how a fresh field looks.
func amountToDisplay(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// displayToAmount parses a display string; empty or malformed counts as 0
func displayToAmount(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
