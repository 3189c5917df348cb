package telegram

const commandsText = `Available commands:

Orders and delivery
/reconcile - process new tracking feed rows
/reprocess <tracking-id> <order> [status] - redo one feed row
/reschedule <order> <date> [reason] - move the delivery date
/partner <order> <partner> - change the delivery partner
/hold <order> <reason> - put a delivery on hold
/schedule <order> <date> [slot] - confirm a delivery slot
/notify <order> <channel> <message> - record a customer notification
/history <order> - show reschedule history

Inventory
/sku <SKU> - product lookup (or just send the SKU)
/setstock <SKU> <qty> - set absolute stock
/return <SKU> <qty> - add returned units back
/setalert <SKU> <threshold> - low-stock alert threshold
/autorestock <SKU> <target> - refill target when low
/lowstock - run the low-stock check now
/predict <SKU> - 30-day demand and restock advice

Support and misc
/ticket new <order> <description> - file a ticket
/ticket status <id> <status> - update a ticket
/ticket list - list tickets
/zone <pincode> - delivery zone and ETA
/notifyme - subscribe this chat to reports
/report - on-demand summary
/privacy - data handling policy`

const privacyPolicy = `Privacy policy

This bot is an internal back-office tool. It reads order and inventory
data from the store's admin API and writes its own bookkeeping to local
files on the server it runs on: processed tracking IDs, alert
thresholds, support tickets and subscribed chat IDs.

No customer personal data is stored by the bot itself. Chat IDs of
subscribed operators are kept only to deliver reports and are removed
when the operator unsubscribes. Messages sent to this bot are not
shared with third parties.`
