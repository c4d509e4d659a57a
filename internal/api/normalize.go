package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/gastos/internal/model"
)

// The backend has shipped several payload shapes over time. These key lists
// are tried in order; the first non-empty value wins.
var (
	idKeys              = []string{"id", "_id"}
	categoryNameKeys    = []string{"nombre", "nombreCategoria", "nombre_categoria", "name", "title"}
	embeddedCategoryKey = []string{"categoria", "category"}
	flatCategoryKeys    = []string{"nombreCategoria", "nombre_categoria", "categoriaNombre", "categoryName", "categoria_nombre"}
	categoryIDKeys      = []string{"categoriaID", "categoria_id", "category_id", "categoryId", "categoriaId"}
	expenseNameKeys     = []string{"nombreGasto", "name", "titulo", "nombre"}
	expenseAmountKeys   = []string{"monto", "amount"}
	expenseDateKeys     = []string{"fechaGasto", "date", "fecha"}
	descriptionKeys     = []string{"descripcion", "description"}
	userNameKeys        = []string{"nombre", "name"}
	userEmailKeys       = []string{"correo", "email"}
	userPhoneKeys       = []string{"telefono", "phone"}
	userPhotoKeys       = []string{"foto", "imagen", "photo", "profilePic", "url"}
	userBudgetKeys      = []string{"presupuesto", "budget"}
)

type object map[string]json.RawMessage

func asObject(raw json.RawMessage) (object, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, false
	}
	var o object
	if err := json.Unmarshal(raw, &o); err != nil {
		return nil, false
	}
	return o, true
}

// scalarString reads a JSON string or number as text. Objects, arrays,
// null and booleans yield "".
func scalarString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

func (o object) str(keys ...string) string {
	for _, k := range keys {
		if v := scalarString(o[k]); v != "" {
			return v
		}
	}
	return ""
}

// idOf reads an id that may be a scalar or an object carrying id/_id.
func idOf(raw json.RawMessage) string {
	if s := scalarString(raw); s != "" {
		return s
	}
	if o, ok := asObject(raw); ok {
		return o.str(idKeys...)
	}
	return ""
}

func (o object) decimal(keys ...string) (decimal.Decimal, bool) {
	for _, k := range keys {
		s := scalarString(o[k])
		if s == "" {
			continue
		}
		if d, err := decimal.NewFromString(s); err == nil {
			return d, true
		}
	}
	return decimal.Zero, false
}

// decodeList accepts either a bare JSON array or an object wrapping one
// under any of the given keys.
func decodeList(body []byte, wrapperKeys ...string) ([]json.RawMessage, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return nil, nil
	}
	var list []json.RawMessage
	if err := json.Unmarshal(body, &list); err == nil {
		return list, nil
	}
	o, ok := asObject(body)
	if !ok {
		return nil, fmt.Errorf("expected list, got %.40q", body)
	}
	for _, k := range wrapperKeys {
		if v, ok := o[k]; ok {
			if err := json.Unmarshal(v, &list); err == nil {
				return list, nil
			}
		}
	}
	return nil, fmt.Errorf("no list under %v", wrapperKeys)
}

// NormalizeCategory maps one backend category record to the canonical shape.
func NormalizeCategory(raw json.RawMessage) (model.Category, bool) {
	if s := scalarString(raw); s != "" {
		return model.Category{ID: s, Name: s}, true
	}
	o, ok := asObject(raw)
	if !ok {
		return model.Category{}, false
	}
	c := model.Category{
		ID:   o.str(idKeys...),
		Name: o.str(categoryNameKeys...),
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return c, true
}

// NormalizeCategories maps a category list, labelling nameless entries
// by position so they stay selectable.
func NormalizeCategories(raws []json.RawMessage) []model.Category {
	out := make([]model.Category, 0, len(raws))
	for _, r := range raws {
		c, ok := NormalizeCategory(r)
		if !ok {
			continue
		}
		if c.Name == "" {
			c.Name = fmt.Sprintf("Category %d", len(out)+1)
		}
		out = append(out, c)
	}
	return out
}

// NormalizeExpense maps one backend expense record to the canonical shape.
//
// CategoryName is taken from an embedded category object first, then from a
// flat name field. Id lookup against the category list happens later, in
// the tracker, because it needs the fetched list.
func NormalizeExpense(raw json.RawMessage) (model.Expense, bool) {
	o, ok := asObject(raw)
	if !ok {
		return model.Expense{}, false
	}

	e := model.Expense{
		ID:          o.str(idKeys...),
		Name:        o.str(expenseNameKeys...),
		Date:        datePart(o.str(expenseDateKeys...)),
		Description: o.str(descriptionKeys...),
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Name == "" {
		e.Name = "Expense"
	}
	if amt, ok := o.decimal(expenseAmountKeys...); ok {
		e.Amount = amt
	}

	var embeddedID string
	for _, k := range embeddedCategoryKey {
		v, present := o[k]
		if !present {
			continue
		}
		if cat, isObj := asObject(v); isObj {
			if e.CategoryName == "" {
				e.CategoryName = cat.str(categoryNameKeys...)
			}
			if embeddedID == "" {
				embeddedID = cat.str(idKeys...)
			}
		} else if s := scalarString(v); s != "" && e.CategoryName == "" {
			e.CategoryName = s
		}
	}
	if e.CategoryName == "" {
		e.CategoryName = o.str(flatCategoryKeys...)
	}
	e.EmbeddedCategory = e.CategoryName

	for _, k := range categoryIDKeys {
		if id := idOf(o[k]); id != "" {
			e.CategoryID = id
			break
		}
	}
	if e.CategoryID == "" {
		e.CategoryID = embeddedID
	}
	return e, true
}

// NormalizeExpenses maps an expense list, dropping records that are not objects.
func NormalizeExpenses(raws []json.RawMessage) []model.Expense {
	out := make([]model.Expense, 0, len(raws))
	for _, r := range raws {
		if e, ok := NormalizeExpense(r); ok {
			out = append(out, e)
		}
	}
	return out
}

// NormalizeProfile maps a user record (with its budget) to the canonical shape.
func NormalizeProfile(raw json.RawMessage) (model.Profile, bool) {
	o, ok := asObject(raw)
	if !ok {
		return model.Profile{}, false
	}
	// Some responses wrap the user.
	for _, k := range []string{"usuario", "user"} {
		if inner, ok := asObject(o[k]); ok {
			o = inner
			break
		}
	}
	p := model.Profile{
		ID:       o.str(idKeys...),
		Name:     o.str(userNameKeys...),
		Email:    o.str(userEmailKeys...),
		Phone:    o.str(userPhoneKeys...),
		PhotoURL: o.str(userPhotoKeys...),
	}
	if total, ok := o.decimal(userBudgetKeys...); ok {
		p.Budget = model.Budget{Total: total}
	} else {
		// presupuesto may itself be an object: {"total": 500} / {"monto": 500}
		for _, k := range userBudgetKeys {
			if b, ok := asObject(o[k]); ok {
				if total, ok := b.decimal("total", "monto", "amount"); ok {
					p.Budget = model.Budget{Total: total}
					break
				}
			}
		}
	}
	return p, true
}

// datePart trims an ISO datetime down to its YYYY-MM-DD prefix.
func datePart(s string) string {
	if i := strings.IndexByte(s, 'T'); i == 10 {
		return s[:10]
	}
	return s
}
